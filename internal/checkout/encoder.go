package checkout

import (
	"net/url"
	"strconv"
	"strings"

	"catalog-storefront/internal/domain"
	"catalog-storefront/internal/money"
)

const (
	DefaultBaseURL = "https://wa.me/"
	DefaultParam   = "text"

	emptyCartMarker = "(carrito vacío)"
)

// Encoder turns a cart snapshot into a messaging deep link.
type Encoder struct {
	// BaseURL is the scheme and host of the link, e.g. https://wa.me/.
	BaseURL string
	// Destination is the address the order is sent to. Only digits are kept.
	Destination string
	// Param is the query parameter carrying the message.
	Param string
}

// NewEncoder returns an Encoder with the default base URL and parameter.
func NewEncoder(destination string) Encoder {
	return Encoder{BaseURL: DefaultBaseURL, Destination: destination, Param: DefaultParam}
}

// Actionable reports whether links built by e can be opened.
func (e Encoder) Actionable() bool {
	return e.destination() != ""
}

// OrderText renders the human-readable order summary. total is rendered as
// given and not cross-checked against lines.
func (e Encoder) OrderText(lines []domain.CartLine, total int64) string {
	rows := []string{
		"🛒 *Pedido desde mi catálogo*",
		"",
		"*Productos:*",
	}
	if len(lines) == 0 {
		rows = append(rows, emptyCartMarker)
	}
	for _, line := range lines {
		rows = append(rows, "• "+lineName(line)+" x"+strconv.Itoa(line.Quantity)+" — $"+money.Format(line.LineTotal()))
	}
	if total < 0 {
		total = 0
	}
	rows = append(rows,
		"",
		"*Total:* $"+money.Format(total),
		"_Enviado desde el catálogo_",
	)
	return strings.Join(rows, "\n")
}

// BuildOrderMessage returns the deep link carrying the order text, or "" when
// no destination is configured.
func (e Encoder) BuildOrderMessage(lines []domain.CartLine, total int64) string {
	dest := e.destination()
	if dest == "" {
		return ""
	}
	base := e.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	param := e.Param
	if param == "" {
		param = DefaultParam
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + dest + sep + param + "=" + encodeURIComponent(e.OrderText(lines, total))
}

func (e Encoder) destination() string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, e.Destination)
}

func lineName(line domain.CartLine) string {
	if line.Variant == nil {
		return line.Name
	}
	label := line.Variant.Attributes.Label()
	if label == "" {
		return line.Name
	}
	return line.Name + " (" + label + ")"
}

// encodeURIComponent escapes s for a query value with spaces as %20.
func encodeURIComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
