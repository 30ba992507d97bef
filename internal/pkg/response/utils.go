// internal/pkg/response/utils.go
package response

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
)

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	data, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(data)
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, map[string]string{"error": message})
}

// FormatHours — "8h", "7h 30m"
func FormatHours(hours float64) string {
	whole := int(hours)
	minutes := int(math.Round((hours - float64(whole)) * 60))
	if minutes == 0 {
		return fmt.Sprintf("%dh", whole)
	}
	return fmt.Sprintf("%dh %dm", whole, minutes)
}

// FormatCurrency — "$123.45"
func FormatCurrency(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}
