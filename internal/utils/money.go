package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatMoney keeps consistent decimal formatting for currency fields.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatRupee renders a fare with the rupee sign, dropping a zero
// fraction so whole-rupee fares read like the booking site shows them.
func FormatRupee(amount float64) string {
	if amount == float64(int64(amount)) {
		return "₹" + formatThousand(int64(amount))
	}
	return "₹" + FormatMoney(amount)
}

func formatThousand(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}
	str := strconv.FormatInt(n, 10)
	var out strings.Builder
	for i, c := range str {
		if i != 0 && (len(str)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(c)
	}
	return sign + out.String()
}
