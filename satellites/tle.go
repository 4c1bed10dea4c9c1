package satellites

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseTLE parses the classic two-line element format (§6: "two 69-column
// ASCII lines per satellite, parsed by the SGP4 collaborator") into an
// Elements record. Checksum columns are ignored; malformed numeric fields
// return an error rather than a zero value, since a silently-wrong orbit
// is worse than a satellite that never appears.
func ParseTLE(line1, line2 string) (*Elements, error) {
	line1 = strings.TrimRight(line1, "\r\n")
	line2 = strings.TrimRight(line2, "\r\n")
	if len(line1) < 68 || len(line2) < 68 {
		return nil, fmt.Errorf("satellites: TLE line too short")
	}

	catalog, err := strconv.Atoi(strings.TrimSpace(line1[2:7]))
	if err != nil {
		return nil, fmt.Errorf("satellites: catalog number: %w", err)
	}
	epochYear, err := strconv.Atoi(strings.TrimSpace(line1[18:20]))
	if err != nil {
		return nil, fmt.Errorf("satellites: epoch year: %w", err)
	}
	if epochYear < 57 {
		epochYear += 2000
	} else {
		epochYear += 1900
	}
	epochDay, err := strconv.ParseFloat(strings.TrimSpace(line1[20:32]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: epoch day: %w", err)
	}
	ndot, err := strconv.ParseFloat(strings.TrimSpace(line1[33:43]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: mean motion dot: %w", err)
	}
	bstar, err := parseDecimalPointAssumed(line1[53:61])
	if err != nil {
		return nil, fmt.Errorf("satellites: bstar: %w", err)
	}

	inc, err := strconv.ParseFloat(strings.TrimSpace(line2[8:16]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: inclination: %w", err)
	}
	raan, err := strconv.ParseFloat(strings.TrimSpace(line2[17:25]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: raan: %w", err)
	}
	eccStr := "0." + strings.TrimSpace(line2[26:33])
	ecc, err := strconv.ParseFloat(eccStr, 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: eccentricity: %w", err)
	}
	argp, err := strconv.ParseFloat(strings.TrimSpace(line2[34:42]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: argp: %w", err)
	}
	manom, err := strconv.ParseFloat(strings.TrimSpace(line2[43:51]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: mean anomaly: %w", err)
	}
	mmotion, err := strconv.ParseFloat(strings.TrimSpace(line2[52:63]), 64)
	if err != nil {
		return nil, fmt.Errorf("satellites: mean motion: %w", err)
	}

	return &Elements{
		CatalogNumber:  catalog,
		EpochYear:      epochYear,
		EpochDay:       epochDay,
		MeanMotionDt2:  ndot,
		BStar:          bstar,
		Inclination:    inc,
		RAAN:           raan,
		Eccentricity:   ecc,
		ArgPerigee:     argp,
		MeanAnomaly:    manom,
		MeanMotion:     mmotion,
	}, nil
}

// parseDecimalPointAssumed parses TLE-style "decimal point assumed"
// exponential fields like " 10270-3" meaning 0.10270e-3.
func parseDecimalPointAssumed(field string) (float64, error) {
	field = strings.TrimSpace(field)
	if field == "" {
		return 0, nil
	}
	sign := 1.0
	if strings.HasPrefix(field, "-") {
		sign = -1
		field = field[1:]
	} else if strings.HasPrefix(field, "+") {
		field = field[1:]
	}
	expIdx := strings.IndexAny(field, "+-")
	if expIdx < 0 {
		v, err := strconv.ParseFloat("0."+field, 64)
		return sign * v, err
	}
	mantissa := field[:expIdx]
	expPart := field[expIdx:]
	exp, err := strconv.Atoi(expPart)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat("0."+mantissa, 64)
	if err != nil {
		return 0, err
	}
	return sign * v * pow10(exp), nil
}

func pow10(n int) float64 {
	v := 1.0
	if n >= 0 {
		for i := 0; i < n; i++ {
			v *= 10
		}
		return v
	}
	for i := 0; i < -n; i++ {
		v /= 10
	}
	return v
}
