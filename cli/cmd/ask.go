package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askJSON bool

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Resolve one question and print the result",
	Long: `Resolve one natural-language question against the dataset and print
the result.

Examples:
  cubeinsight ask "업체별 노무비 현황을 보여줘"
  cubeinsight ask --json "이번 달 청구될 예상 기성 총액은 얼마인가?"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full result as JSON")
}

func runAsk(cmd *cobra.Command, args []string) error {
	_, store, resolver, err := setup()
	if err != nil {
		return err
	}
	defer store.Close()

	question := strings.Join(args, " ")
	result := resolver.Resolve(cmd.Context(), question)

	if askJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Println("■ " + result.Title)
	fmt.Println(result.Summary)
	if result.SQLError != "" {
		fmt.Println("⚠ " + result.SQLError)
		return nil
	}
	if len(result.QueryResult.Rows) > 0 {
		fmt.Println()
		fmt.Println(strings.Join(result.QueryResult.Columns, " | "))
		for _, row := range result.QueryResult.Rows {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = fmt.Sprintf("%v", v)
			}
			fmt.Println(strings.Join(cells, " | "))
		}
	}
	if result.Report != nil {
		fmt.Println()
		fmt.Println("■ " + result.Report.ReportTitle)
		fmt.Println(result.Report.Situation)
		for _, s := range result.Report.Strategies {
			fmt.Printf("\n%s\n  대상: %s\n  방안: %s\n  효과: %s\n  비용: %s\n",
				s.Title, s.Target, s.Action, s.Effect, s.Cost)
		}
		fmt.Println("\n" + result.Report.Recommendation)
	}
	fmt.Printf("\n(%s, %dms)\n", result.Provenance, result.ElapsedMs)
	return nil
}
