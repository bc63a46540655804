package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidInterval возвращается при некорректном временном интервале
var ErrInvalidInterval = errors.New("domain: invalid time interval")

// TimeInterval полуоткрытый временной интервал [Start, End).
// Хранится только внутри бронирования, отдельно не персистится.
type TimeInterval struct {
	Start time.Time
	End   time.Time
}

// NewTimeInterval создает интервал и проверяет инвариант Start < End
func NewTimeInterval(start, end time.Time) (TimeInterval, error) {
	iv := TimeInterval{Start: start.UTC(), End: end.UTC()}
	if err := iv.Validate(); err != nil {
		return TimeInterval{}, err
	}
	return iv, nil
}

// Validate проверяет инвариант Start < End
func (i TimeInterval) Validate() error {
	if !i.Start.Before(i.End) {
		return fmt.Errorf("%w: start %s is not before end %s",
			ErrInvalidInterval, i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
	}
	return nil
}

// Duration возвращает длительность интервала
func (i TimeInterval) Duration() time.Duration {
	return i.End.Sub(i.Start)
}

// Overlaps проверяет пересечение двух полуоткрытых интервалов.
// Соприкасающиеся границы (a.End == b.Start) пересечением не считаются.
func (i TimeInterval) Overlaps(other TimeInterval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

// EndedBy сообщает, закончился ли интервал к моменту now
func (i TimeInterval) EndedBy(now time.Time) bool {
	return !now.Before(i.End)
}

func (i TimeInterval) String() string {
	return fmt.Sprintf("[%s, %s)", i.Start.Format(time.RFC3339), i.End.Format(time.RFC3339))
}
