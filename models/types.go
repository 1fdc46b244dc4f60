package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FeatureType tags a mat slot with a physical attribute.
type FeatureType string

const (
	FeatureHandicap FeatureType = "H" // handicap accessible
	FeatureShower   FeatureType = "S" // shower equipped
)

func (f FeatureType) Valid() bool {
	switch f {
	case FeatureHandicap, FeatureShower:
		return true
	}
	return false
}

// PaymentType codes how a guest's stay is funded.
type PaymentType string

const (
	PaymentCash          PaymentType = "$$"
	PaymentAgency        PaymentType = "AG"
	PaymentCityTeam      PaymentType = "CT"
	PaymentFreeMat       PaymentType = "FM"
	PaymentMedicalMat    PaymentType = "MM"
	PaymentSevereWeather PaymentType = "SW"
	PaymentUnknown       PaymentType = "UK"
	PaymentWorkBed       PaymentType = "WB"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentAgency, PaymentCityTeam, PaymentFreeMat,
		PaymentMedicalMat, PaymentSevereWeather, PaymentUnknown, PaymentWorkBed:
		return true
	}
	return false
}

// FeatureList is a nullable set of feature tags stored as a JSON text
// column. A nil list round-trips as SQL NULL / JSON null, which is distinct
// from an empty list; callers rely on that three-state behavior.
type FeatureList []FeatureType

func (l FeatureList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *FeatureList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FeatureList", value)
	}
	return json.Unmarshal(b, l)
}

// GormDataType names the column type explicitly; the migrator cannot
// infer one from a slice type.
func (FeatureList) GormDataType() string {
	return "text"
}

func (l FeatureList) Contains(f FeatureType) bool {
	for _, have := range l {
		if have == f {
			return true
		}
	}
	return false
}

// FeatureMap sparsely assigns feature tags to mat numbers. Absence of a mat
// number means "no features", not "empty feature list".
type FeatureMap map[int]FeatureList

func (m FeatureMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *FeatureMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into FeatureMap", value)
	}
	return json.Unmarshal(b, m)
}

// GormDataType names the column type explicitly; the migrator cannot
// infer one from a map type.
func (FeatureMap) GormDataType() string {
	return "text"
}

// ParseMatsList expands a mats declaration like "1-58" or "1-10,12,20-25"
// into an ascending list of mat numbers. Segments must be positive, in
// ascending order, and non-overlapping.
func ParseMatsList(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("mats list is empty")
	}
	var mats []int
	last := 0
	for _, segment := range strings.Split(s, ",") {
		segment = strings.TrimSpace(segment)
		from, to, err := parseMatsSegment(segment)
		if err != nil {
			return nil, err
		}
		if from <= last {
			return nil, fmt.Errorf("mats list segment %q out of order or overlapping", segment)
		}
		for mat := from; mat <= to; mat++ {
			mats = append(mats, mat)
		}
		last = to
	}
	return mats, nil
}

func parseMatsSegment(segment string) (int, int, error) {
	if from, to, ok := strings.Cut(segment, "-"); ok {
		lo, err := parseMatNumber(from)
		if err != nil {
			return 0, 0, err
		}
		hi, err := parseMatNumber(to)
		if err != nil {
			return 0, 0, err
		}
		if hi < lo {
			return 0, 0, fmt.Errorf("mats list range %q is inverted", segment)
		}
		return lo, hi, nil
	}
	mat, err := parseMatNumber(segment)
	if err != nil {
		return 0, 0, err
	}
	return mat, mat, nil
}

func parseMatNumber(s string) (int, error) {
	mat, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || mat < 1 {
		return 0, fmt.Errorf("invalid mat number %q", s)
	}
	return mat, nil
}

// MatNumbers returns the feature map's mat numbers in ascending order.
func (m FeatureMap) MatNumbers() []int {
	mats := make([]int, 0, len(m))
	for mat := range m {
		mats = append(mats, mat)
	}
	sort.Ints(mats)
	return mats
}

// ValidDate reports whether s is an ISO 8601 calendar date (YYYY-MM-DD).
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

// ValidTimeOfDay reports whether s is a 24-hour clock time (HH:MM).
func ValidTimeOfDay(s string) bool {
	_, err := time.Parse("15:04", s)
	return err == nil
}
