package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var (
	getFields  string
	recordData string
)

// sobjectCmd groups the record CRUD commands
var sobjectCmd = &cobra.Command{
	Use:   "sobject",
	Short: "Record CRUD operations",
	Long:  `Create, read, update, upsert, and delete records of an sObject type.`,
}

var sobjectGetCmd = &cobra.Command{
	Use:   "get <object> <id>",
	Short: "Retrieve a record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var fields []string
		if getFields != "" {
			fields = strings.Split(getFields, ",")
		}
		result, err := client.Get(cmd.Context(), args[0], args[1], fields...)
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

var sobjectCreateCmd = &cobra.Command{
	Use:   "create <object>",
	Short: "Create a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseRecordData()
		if err != nil {
			return err
		}
		result, err := client.Create(cmd.Context(), args[0], data)
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

var sobjectUpsertCmd = &cobra.Command{
	Use:   "upsert <object>",
	Short: "Create or update a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseRecordData()
		if err != nil {
			return err
		}
		result, err := client.Upsert(cmd.Context(), args[0], data)
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

var sobjectUpdateCmd = &cobra.Command{
	Use:   "update <object> <id>",
	Short: "Update a record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := parseRecordData()
		if err != nil {
			return err
		}
		result, err := client.Update(cmd.Context(), args[0], args[1], data)
		if err != nil {
			return err
		}
		return printResult(result)
	},
}

var sobjectDeleteCmd = &cobra.Command{
	Use:   "delete <object> <id>",
	Short: "Delete a record by id",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		result, err := client.Delete(cmd.Context(), args[0], args[1])
		if err != nil {
			return err
		}
		logger.Info().Str("object", args[0]).Str("id", args[1]).Msg("Record deleted")
		return printResult(result)
	},
}

func init() {
	sobjectGetCmd.Flags().StringVar(&getFields, "fields", "", "comma-separated field list to return")
	sobjectCreateCmd.Flags().StringVar(&recordData, "data", "", "record as a JSON object")
	sobjectUpsertCmd.Flags().StringVar(&recordData, "data", "", "record as a JSON object")
	sobjectUpdateCmd.Flags().StringVar(&recordData, "data", "", "record as a JSON object")

	sobjectCmd.AddCommand(sobjectGetCmd)
	sobjectCmd.AddCommand(sobjectCreateCmd)
	sobjectCmd.AddCommand(sobjectUpsertCmd)
	sobjectCmd.AddCommand(sobjectUpdateCmd)
	sobjectCmd.AddCommand(sobjectDeleteCmd)
}

// parseRecordData decodes the --data flag into a record payload
func parseRecordData() (map[string]any, error) {
	if recordData == "" {
		return nil, fmt.Errorf("--data is required")
	}
	var data map[string]any
	if err := json.Unmarshal([]byte(recordData), &data); err != nil {
		return nil, fmt.Errorf("invalid --data JSON: %w", err)
	}
	return data, nil
}
