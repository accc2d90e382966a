package moyface

import "fmt"

// ApiLevel identifies the firmware API generation a face targets. The
// capability notes come from surveying faces in the wild.
type ApiLevel int

var apiLevels = map[ApiLevel]string{
	2:  "HHMM only",
	4:  "HHMM, weekday name",
	10: "analog HMS hands",
	13: "HHMM, weekday name, DD",
	15: "HHMM, weekday name, DD, MM, steps",
	18: "HHMM or analog HMS hands, DD, weekday name, bpm, kcal, battery, steps",
	20: "same as 18 plus unknown extras",
	29: "HHMM, bpm, weather",
	35: "analog HMS hands, weekday name, DD, bpm",
}

func (l ApiLevel) String() string {
	if s, ok := apiLevels[l]; ok {
		return fmt.Sprintf("API %d (%s)", int(l), s)
	}
	return fmt.Sprintf("API %d", int(l))
}
