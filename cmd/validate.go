package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/Alex-H307/cafe-system/loader"
	"github.com/Alex-H307/cafe-system/schema"
	"github.com/Alex-H307/cafe-system/validator"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the table catalog",
	Long: `Validate the table catalog (the built-in one, or the file given by --schema).

This command checks:
- Table names and ids (unique, encodable in the store)
- Field definitions (unique names, known types, primary key first)
- Foreign fields (each must match exactly one primary key)
- Check rules (known formats, numeric range bounds)
- Defaults (must pass their own field rules)

Examples:
  cafe validate
  cafe validate --schema custom.yaml
  cafe validate --format json
`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := validateSchema(); err != nil {
			fmt.Printf("❌ Schema validation failed: %v\n", err)
			os.Exit(1)
		}
	},
}

var validateFormat string

func init() {
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text, json)")
}

func validateSchema() error {
	models, err := loadModels()
	if err != nil {
		return fmt.Errorf("failed to load schema: %v", err)
	}

	result := validator.ValidateModels(models)
	if validateFormat == "json" {
		return outputJSON(result)
	}
	return outputText(result)
}

func loadModels() ([]schema.Model, error) {
	if schemaPath == "" {
		return loader.LoadDefaultModels()
	}
	data, err := os.ReadFile(schemaPath)
	if err != nil {
		return nil, err
	}
	return loader.LoadModelsFromBytes(data)
}

func outputJSON(result *validator.ValidationResult) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func outputText(result *validator.ValidationResult) error {
	// Print summary
	if result.Valid {
		color.Green("✅ Schema validation passed!")
	} else {
		color.Red("❌ Schema validation failed!")
	}

	// Print errors
	if len(result.Errors) > 0 {
		fmt.Printf("\n🔴 Errors (%d):\n", len(result.Errors))
		for i, err := range result.Errors {
			fmt.Printf("  %d. ", i+1)
			if err.Table != "" {
				fmt.Printf("[%s]", err.Table)
			}
			if err.Field != "" {
				fmt.Printf(".%s", err.Field)
			}
			fmt.Printf(": %s\n", err.Message)
		}
	}

	// Print warnings
	if len(result.Warnings) > 0 {
		fmt.Printf("\n🟡 Warnings (%d):\n", len(result.Warnings))
		for i, warning := range result.Warnings {
			fmt.Printf("  %d. ", i+1)
			if warning.Table != "" {
				fmt.Printf("[%s]", warning.Table)
			}
			if warning.Field != "" {
				fmt.Printf(".%s", warning.Field)
			}
			fmt.Printf(": %s\n", warning.Message)
		}
	}

	// Print info
	if len(result.Info) > 0 {
		fmt.Printf("\n🔵 Info (%d):\n", len(result.Info))
		for i, info := range result.Info {
			fmt.Printf("  %d. ", i+1)
			if info.Table != "" {
				fmt.Printf("[%s]", info.Table)
			}
			if info.Field != "" {
				fmt.Printf(".%s", info.Field)
			}
			fmt.Printf(": %s\n", info.Message)
		}
	}

	// Print summary
	fmt.Printf("\n📊 Summary:\n")
	fmt.Printf("  • Errors: %d\n", len(result.Errors))
	fmt.Printf("  • Warnings: %d\n", len(result.Warnings))
	fmt.Printf("  • Info: %d\n", len(result.Info))

	if result.Valid {
		fmt.Printf("\n🎉 Your catalog is valid and ready to use!\n")
	} else {
		fmt.Printf("\n💡 Fix the errors above before opening a store with this catalog.\n")
	}

	return nil
} 