package cli

import (
	"time"

	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/spf13/pflag"
)

// weekEndingValue parses a YYYY-MM-DD flag and moves it to the Friday that
// ends its week, so commands only ever see week-ending dates.
type weekEndingValue struct {
	target *time.Time
}

var _ pflag.Value = (*weekEndingValue)(nil)

func (v *weekEndingValue) Set(s string) error {
	end, err := domain.ParseWeekEnding(s)
	if err != nil {
		return err
	}
	*v.target = end
	return nil
}

func (v *weekEndingValue) String() string {
	if v.target == nil || v.target.IsZero() {
		return ""
	}
	return v.target.Format(domain.DateLayout)
}

func (v *weekEndingValue) Type() string { return "date" }

func addWeekEndingFlag(fs *pflag.FlagSet, target *time.Time) {
	fs.Var(&weekEndingValue{target: target}, "week-ending", "Any date in the week (YYYY-MM-DD)")
}
