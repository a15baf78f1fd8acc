package views

import (
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// DecodeViews converts a stored decimal number into a count, truncating toward
// zero.
func DecodeViews(value string) (int64, error) {
	number, err := decimal.NewFromString(value)
	if err != nil {
		return 0, errors.Wrapf(ErrMalformed, "invalid views value %q", value)
	}

	whole := number.Truncate(0).BigInt()
	if !whole.IsInt64() {
		return 0, errors.Wrapf(ErrMalformed, "views value %s is out of range", value)
	}

	views := whole.Int64()
	if views < 0 {
		return 0, errors.Wrapf(ErrMalformed, "views value %s is negative", value)
	}

	return views, nil
}

// EncodeViews is the inverse of DecodeViews for whole counts.
func EncodeViews(views int64) string {
	return decimal.NewFromInt(views).String()
}
