package catalog

import (
	"encoding/json"
	"fmt"
	"os"

	"planner-backend/internal/semester"
)

type seedCourse struct {
	Code         string          `json:"code"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	Credits      int             `json:"credits"`
	Department   string          `json:"department"`
	College      string          `json:"college"`
	Difficulty   int             `json:"difficulty"`
	Offerings    []semester.Term `json:"offerings"`
	Tracks       []string        `json:"tracks"`
	Requirement  json.RawMessage `json:"requirement"`
	Corequisites []string        `json:"corequisites"`
}

// LoadSeedFile reads a catalog seed file (the assembled output of the
// external scraping tool) into Course values.
func LoadSeedFile(path string) ([]Course, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a JSON array of seed courses.
func ParseSeed(data []byte) ([]Course, error) {
	var raw []seedCourse
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("catalog seed parse: %w", err)
	}
	out := make([]Course, 0, len(raw))
	for _, sc := range raw {
		if sc.Code == "" {
			return nil, fmt.Errorf("catalog seed entry missing code")
		}
		req, err := UnmarshalRequirement(sc.Requirement)
		if err != nil {
			return nil, fmt.Errorf("course %s: %w", sc.Code, err)
		}
		out = append(out, Course{
			Code:         sc.Code,
			Title:        sc.Title,
			Description:  sc.Description,
			Credits:      sc.Credits,
			Department:   sc.Department,
			College:      sc.College,
			Difficulty:   sc.Difficulty,
			Offerings:    sc.Offerings,
			Tracks:       sc.Tracks,
			Requirement:  req,
			Corequisites: sc.Corequisites,
		})
	}
	return out, nil
}
