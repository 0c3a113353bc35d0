package dashboard

import (
	"bytes"
	"html/template"
	"math"

	"github.com/dustin/go-humanize"
)

// DefaultCurrencySymbol prefixes the ledger balance.
const DefaultCurrencySymbol = "₹"

const cardStyle = "padding: 10px; border: 1px solid #ddd; border-radius: 8px; min-width: 180px;"

var fragment = template.Must(template.New("dashboard").Parse(`
<div class="custom-customer-dashboard" style="display: flex; gap: 20px; margin-bottom: 20px;">
{{- range .Cards}}
    <div style="{{$.CardStyle}}">
        <div><strong style="font-size: 18px;">{{.Value}}</strong>   <medium>{{.Label}}</medium></div>
    </div>
{{- end}}
</div>
`))

var errorFragment = template.Must(template.New("dashboard_error").Parse(`
<div style="padding: 12px; background: #fee2e2; color: #b91c1c;">
    <strong>Error loading dashboard:</strong> {{.}}
</div>
`))

type card struct {
	Value string
	Label string
}

// Render returns the dashboard HTML fragment for stats.
func Render(stats *Stats, currencySymbol string) (string, error) {
	if currencySymbol == "" {
		currencySymbol = DefaultCurrencySymbol
	}
	data := struct {
		CardStyle template.CSS
		Cards     []card
	}{
		CardStyle: template.CSS(cardStyle),
		Cards: []card{
			{Value: humanize.Comma(int64(stats.Ongoing)), Label: "Ongoing Projects"},
			{Value: humanize.Comma(int64(stats.Cancelled)), Label: "Cancelled Projects"},
			{Value: humanize.Comma(int64(stats.Completed)), Label: "Completed Projects"},
			{Value: humanize.Comma(int64(stats.Unbilled)), Label: "Unbilled Projects"},
			{Value: currencySymbol + FormatAmount(stats.Balance), Label: "Ledger Balance"},
		},
	}

	var buf bytes.Buffer
	if err := fragment.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderError returns the fragment shown in place of the dashboard when
// loading fails.
func RenderError(err error) string {
	var buf bytes.Buffer
	// The template has no failure modes beyond writer errors.
	_ = errorFragment.Execute(&buf, err.Error())
	return buf.String()
}

// FormatAmount rounds to two decimals and groups thousands: 1234.5 -> "1,234.50".
func FormatAmount(v float64) string {
	v = math.Round(v*100) / 100
	if v == 0 {
		v = 0 // drop negative zero
	}
	return humanize.FormatFloat("#,###.##", v)
}
