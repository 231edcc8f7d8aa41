package client

import (
	"fmt"
	"strings"
)

// emptyCartPlaceholder is shown when a summary is built over no lines.
const emptyCartPlaceholder = "No hay productos en el carrito"

// Summary renders a plain-text purchase summary: one row per line with its
// subtotal, then the formatted grand total. An empty cart yields only the
// placeholder.
func (c *Cart) Summary() string {
	lines := c.Lines()
	if len(lines) == 0 {
		return emptyCartPlaceholder
	}

	var b strings.Builder
	for _, line := range lines {
		fmt.Fprintf(&b, "%s x%d = $%s\n", line.Nombre, line.Requested, line.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(&b, "Total: %s", c.FormattedTotal())
	return b.String()
}
