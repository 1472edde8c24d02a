// formatação numérica de headers sem puxar fmt:
// strconv não usa notação científica para os valores usuais.

package ratelimit

import "strconv"

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
