package export

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/common"
	"github.com/joseph-ayodele/invoice-extractor/internal/entity"
)

// BuildRowsJSONSchema describes the exported JSON: an array of rows where
// every text cell is non-blank and the quantity is a non-negative integer.
func BuildRowsJSONSchema() map[string]any {
	props := map[string]any{}
	var required []string
	for _, f := range constants.Fields() {
		required = append(required, string(f))
		if f == constants.FieldTotalQuantity {
			props[string(f)] = map[string]any{"type": "integer", "minimum": 0}
			continue
		}
		props[string(f)] = map[string]any{"type": "string", "minLength": 1, "pattern": `\S`}
	}

	return map[string]any{
		"type": "array",
		"items": map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"properties":           props,
			"required":             required,
		},
	}
}

// ValidateJSONAgainstSchema validates "data" against "schemaMap".
func ValidateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("rows.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("rows.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}

// RowsJSON marshals rows and checks them against BuildRowsJSONSchema.
func (s *Service) RowsJSON(ctx context.Context, rows []entity.OutputRow) ([]byte, error) {
	start := time.Now()
	if rows == nil {
		rows = []entity.OutputRow{}
	}
	b, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal rows: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateJSONAgainstSchema(BuildRowsJSONSchema(), b); err != nil {
		return nil, err
	}
	s.logger.Info("export.json.ok", "rows", len(rows), "elapsed_ms", time.Since(start).Milliseconds())
	return b, nil
}

// WriteJSON writes the validated JSON rows to path.
func (s *Service) WriteJSON(ctx context.Context, path string, rows []entity.OutputRow) error {
	b, err := s.RowsJSON(ctx, rows)
	if err != nil {
		return common.NewAppError("EXPORT_ERROR", "build json", fmt.Errorf("%w: %w", common.ErrExport, err))
	}
	if err := os.WriteFile(path, append(b, '\n'), 0o644); err != nil {
		return common.NewAppError("EXPORT_ERROR", "write "+path, fmt.Errorf("%w: %w", common.ErrExport, err))
	}
	return nil
}
