// Command quadra computes definite integrals and Gaussian quadrature rules
// from the command line, using the same numeric core as the HTTP server.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/copyleftdev/QUADRA/internal/quadrature"
	"github.com/copyleftdev/QUADRA/internal/quadrature/gauss"
	"github.com/copyleftdev/QUADRA/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "quadra",
	Short: "Adaptive numerical integration and Gaussian quadrature rules",
}

var (
	integrateMethod  string
	integrateLower   float64
	integrateUpper   float64
	integrateMaxEval int
	integratePoints  int
	integrateRelAcc  float64
	integrateAbsAcc  float64
	integrateCoeffs  []float64
	integrateJSON    bool
)

var integrateCmd = &cobra.Command{
	Use:   "integrate <integrand>",
	Short: "Compute the definite integral of a named integrand",
	Long: `Computes the definite integral of one of the built-in integrands.

Examples:
  quadra integrate sin --lower 0 --upper 3.14159265
  quadra integrate runge --lower -1 --upper 1 --method legendre-gauss --points 7
  quadra integrate square --method simpson --json
  quadra integrate polynomial --coeffs 1,0,3 --upper 2

Run "quadra integrands" to list the available integrand names. The
"polynomial" integrand is built from --coeffs, lowest degree first.`,
	Args: cobra.ExactArgs(1),
	RunE: runIntegrate,
}

var (
	ruleOrder int
	ruleJSON  bool
)

var ruleCmd = &cobra.Command{
	Use:   "rule <legendre|hermite|laguerre>",
	Short: "Print the nodes and weights of a Gaussian quadrature rule",
	Args:  cobra.ExactArgs(1),
	RunE:  runRule,
}

var integrandsCmd = &cobra.Command{
	Use:   "integrands",
	Short: "List the built-in integrand names",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range server.IntegrandNames() {
			fmt.Println(name)
		}
	},
}

func init() {
	integrateCmd.Flags().StringVarP(&integrateMethod, "method", "m", "romberg",
		"Integration method (romberg, midpoint, trapezoid, simpson, legendre-gauss)")
	integrateCmd.Flags().Float64VarP(&integrateLower, "lower", "a", 0,
		"Lower bound of the integration interval")
	integrateCmd.Flags().Float64VarP(&integrateUpper, "upper", "b", 1,
		"Upper bound of the integration interval")
	integrateCmd.Flags().IntVar(&integrateMaxEval, "max-eval", 100000,
		"Maximal number of integrand evaluations")
	integrateCmd.Flags().IntVarP(&integratePoints, "points", "p", 5,
		"Points per sub-interval (legendre-gauss only)")
	integrateCmd.Flags().Float64Var(&integrateRelAcc, "rel-acc", quadrature.DefaultRelativeAccuracy,
		"Relative accuracy threshold")
	integrateCmd.Flags().Float64Var(&integrateAbsAcc, "abs-acc", quadrature.DefaultAbsoluteAccuracy,
		"Absolute accuracy threshold")
	integrateCmd.Flags().Float64SliceVar(&integrateCoeffs, "coeffs", nil,
		"Polynomial coefficients, lowest degree first (polynomial integrand only)")
	integrateCmd.Flags().BoolVar(&integrateJSON, "json", false,
		"Output as JSON for scripting")

	ruleCmd.Flags().IntVarP(&ruleOrder, "order", "n", 5,
		"Number of points of the rule")
	ruleCmd.Flags().BoolVar(&ruleJSON, "json", false,
		"Output as JSON for scripting")

	rootCmd.AddCommand(integrateCmd)
	rootCmd.AddCommand(ruleCmd)
	rootCmd.AddCommand(integrandsCmd)
}

func runIntegrate(cmd *cobra.Command, args []string) error {
	var f quadrature.UnivariateFunction
	if args[0] == "polynomial" {
		if len(integrateCoeffs) == 0 {
			return fmt.Errorf("the polynomial integrand requires --coeffs")
		}
		f = server.PolynomialIntegrand(integrateCoeffs)
	} else {
		var ok bool
		f, ok = server.LookupIntegrand(args[0])
		if !ok {
			return fmt.Errorf("unknown integrand %q, run \"quadra integrands\" for the list", args[0])
		}
	}

	integrator, err := newIntegrator(integrateMethod)
	if err != nil {
		return err
	}

	value, err := integrator.Integrate(integrateMaxEval, f, integrateLower, integrateUpper)
	if err != nil {
		return err
	}

	if integrateJSON {
		return printJSON(map[string]interface{}{
			"value":       value,
			"method":      integrateMethod,
			"iterations":  integrator.Iterations(),
			"evaluations": integrator.Evaluations(),
		})
	}

	fmt.Printf("%.15g\n", value)
	fmt.Printf("method: %s, iterations: %d, evaluations: %d\n",
		integrateMethod, integrator.Iterations(), integrator.Evaluations())
	return nil
}

func newIntegrator(method string) (quadrature.Integrator, error) {
	switch method {
	case "romberg":
		return quadrature.NewRombergIntegratorWithAccuracy(integrateRelAcc, integrateAbsAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.RombergMaxIterationsCount)
	case "midpoint":
		return quadrature.NewMidPointIntegratorWithAccuracy(integrateRelAcc, integrateAbsAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.MidPointMaxIterationsCount)
	case "trapezoid":
		return quadrature.NewTrapezoidIntegratorWithAccuracy(integrateRelAcc, integrateAbsAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.TrapezoidMaxIterationsCount)
	case "simpson":
		return quadrature.NewSimpsonIntegratorWithAccuracy(integrateRelAcc, integrateAbsAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.SimpsonMaxIterationsCount)
	case "legendre-gauss":
		return quadrature.NewIterativeLegendreGaussIntegratorWithAccuracy(integratePoints,
			integrateRelAcc, integrateAbsAcc,
			quadrature.DefaultMinimalIterationCount, quadrature.DefaultMaximalIterationCount)
	default:
		return nil, fmt.Errorf("unknown integration method %q", method)
	}
}

func runRule(cmd *cobra.Command, args []string) error {
	factory := gauss.NewIntegratorFactory()

	var (
		rule gauss.Rule
		err  error
	)
	switch args[0] {
	case "legendre":
		rule, err = factory.LegendreRule(ruleOrder)
	case "hermite":
		rule, err = factory.HermiteRule(ruleOrder)
	case "laguerre":
		rule, err = factory.LaguerreRule(ruleOrder)
	default:
		return fmt.Errorf("unknown rule family %q", args[0])
	}
	if err != nil {
		return err
	}

	if ruleJSON {
		return printJSON(map[string]interface{}{
			"family":  args[0],
			"order":   ruleOrder,
			"nodes":   rule.Nodes,
			"weights": rule.Weights,
		})
	}

	fmt.Printf("%-24s %-24s\n", "node", "weight")
	for i := range rule.Nodes {
		fmt.Printf("%- 24.15g %- 24.15g\n", rule.Nodes[i], rule.Weights[i])
	}
	return nil
}

func printJSON(v interface{}) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
