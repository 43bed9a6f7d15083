package encoding

import (
	"bufio"
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/diwise/api-sos/internal/pkg/domain"
)

// writeResult writes the values in the text encoding of the result
// template. The block count comes first and every block holds the
// phenomenon time followed by the value.
func writeResult(ctx context.Context, w io.Writer, resp *domain.GetResultResponse) error {
	enc := resp.Template.Encoding
	if enc.TokenSeparator == "" || enc.BlockSeparator == "" {
		enc = domain.DefaultResultEncoding()
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(strconv.FormatInt(resp.Count, 10))

	for _, series := range resp.Series {
		if series.Values == nil {
			continue
		}

		for series.Values.Next(ctx) {
			o := series.Values.Observation()

			bw.WriteString(enc.BlockSeparator)
			bw.WriteString(formatTime(o.PhenomenonTime.End))
			bw.WriteString(enc.TokenSeparator)
			bw.WriteString(textValue(o.Value, enc.DecimalSeparator))
		}

		if err := series.Values.Err(); err != nil {
			return err
		}
	}

	return bw.Flush()
}

func textValue(v domain.Value, decimalSeparator string) string {
	switch {
	case v.Quantity != nil:
		s := strconv.FormatFloat(*v.Quantity, 'f', -1, 64)
		if decimalSeparator != "" && decimalSeparator != "." {
			s = strings.Replace(s, ".", decimalSeparator, 1)
		}
		return s
	case v.Count != nil:
		return strconv.FormatInt(*v.Count, 10)
	case v.Boolean != nil:
		return strconv.FormatBool(*v.Boolean)
	case v.Text != nil:
		return *v.Text
	case v.Href != nil:
		return *v.Href
	case v.Geometry != nil:
		return *v.Geometry
	}
	return ""
}
