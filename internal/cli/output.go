package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// ValidFormats formatos aceitos por --output.
var ValidFormats = []string{"text", "json", "yaml"}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// WriteReport escreve o relatório no formato pedido.
func WriteReport(w io.Writer, format string, r *ReconcileReport) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	case "text":
		_, err := fmt.Fprintf(w, "%s reconciliados: %d (%d ms)\n", r.Target, r.Rows, r.DurationMS)
		return err
	}
	return fmt.Errorf("formato %q inválido: use um de %v", format, ValidFormats)
}
