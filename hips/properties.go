package hips

import (
	"bufio"
	"bytes"
	"strconv"
	"strings"
)

// Properties is the parsed key=value HiPS properties file (§6): at least
// hips_order, hips_tile_width, hips_frame, hips_tile_format, plus optional
// hips_release_date and hips_order_min.
type Properties struct {
	Order        int
	OrderMin     int
	TileWidth    int
	Frame        string
	TileFormat   string
	ReleaseDate  string
	Raw          map[string]string

	AllSkyAvailable bool
}

// ParseProperties parses a single key=value properties block.
func ParseProperties(data []byte) (*Properties, error) {
	raw, err := parseKeyValueBlock(data)
	if err != nil {
		return nil, err
	}
	p := &Properties{Raw: raw}
	p.Order, _ = strconv.Atoi(raw["hips_order"])
	p.OrderMin, _ = strconv.Atoi(raw["hips_order_min"])
	p.TileWidth, _ = strconv.Atoi(raw["hips_tile_width"])
	p.Frame = raw["hips_frame"]
	p.ReleaseDate = raw["hips_release_date"]

	formats := strings.Fields(raw["hips_tile_format"])
	if len(formats) > 0 {
		p.TileFormat = formats[0]
	}
	// An Allsky composite is conventionally available whenever the survey
	// declares an order >= 3 tile pyramid (§6): the all-sky image always
	// encodes order-3 tiles.
	p.AllSkyAvailable = p.Order >= 3
	return p, nil
}

func parseKeyValueBlock(data []byte) (map[string]string, error) {
	out := map[string]string{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		idx := strings.Index(line, "=")
		if idx < 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		val := strings.TrimSpace(line[idx+1:])
		out[key] = val
	}
	return out, scanner.Err()
}

// ParseHipsList parses a hipslist discovery file (§6): a sequence of
// blank-line-separated property blocks, one per discoverable survey.
func ParseHipsList(data []byte) ([]*Properties, error) {
	var result []*Properties
	for _, block := range bytes.Split(data, []byte("\n\n")) {
		if len(bytes.TrimSpace(block)) == 0 {
			continue
		}
		p, err := ParseProperties(block)
		if err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, nil
}
