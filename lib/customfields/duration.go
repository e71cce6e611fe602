package customfields

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Duration is set by number and size suffix. Possible suffixes are:
// * d: days
// * h: hours
// * m: minutes
// * s: seconds
// * ms: milliseconds
// Suffix can be in uppercase or lowercase. Number without suffix is treated as seconds.
// E.g. "7d" is one week, "90s" is a minute and a half.
type Duration time.Duration

func (d Duration) Val() time.Duration {
	return time.Duration(d)
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	return d.FromStr(s)
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return d.FromStr(s)
}

func (d *Duration) FromStr(s string) error {
	num, suf, err := separateStr(s)
	if err != nil {
		return err
	}
	var unit time.Duration
	switch suf {
	case "d":
		unit = 24 * time.Hour
	case "h":
		unit = time.Hour
	case "m":
		unit = time.Minute
	case "", "s":
		unit = time.Second
	case "ms":
		unit = time.Millisecond
	default:
		return fmt.Errorf("unknown duration suffix %s", suf)
	}
	*d = Duration(time.Duration(num) * unit)
	return nil
}

func (d Duration) String() string {
	v := time.Duration(d)
	switch {
	case v == 0:
		return "0s"
	case v%(24*time.Hour) == 0:
		return fmt.Sprintf("%dd", v/(24*time.Hour))
	case v%time.Hour == 0:
		return fmt.Sprintf("%dh", v/time.Hour)
	case v%time.Minute == 0:
		return fmt.Sprintf("%dm", v/time.Minute)
	case v%time.Second == 0:
		return fmt.Sprintf("%ds", v/time.Second)
	default:
		return fmt.Sprintf("%dms", v/time.Millisecond)
	}
}
