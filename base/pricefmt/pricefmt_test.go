package pricefmt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFormatPrice(t *testing.T) {
	req := require.New(t)

	cases := map[int64]string{
		0:        "0.00",
		5:        "5.00",
		115:      "115.00",
		1250:     "1,250.00",
		1000000:  "1,000,000.00",
		-1250:    "-1,250.00",
		99999999: "99,999,999.00",
	}

	for amount, want := range cases {
		req.Equal(want, FormatPrice(amount))
	}
}
