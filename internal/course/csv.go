package course

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
)

// LoadStats summarizes what a CSV load wrote.
type LoadStats struct {
	Holes    int `json:"holes"`
	Yardages int `json:"yardages"`
}

// LoadCSV seeds a course's holes and tee yardages from a CSV with columns
// (case-insensitive): course|nine, hole, par, one column per tee name, and
// optionally handicap|hdcp. Example row: South,1,4,339,319,258,9
func LoadCSV(store Store, courseName string, tees []string, r io.Reader) (LoadStats, error) {
	var stats LoadStats

	reader := csv.NewReader(r)
	header, err := reader.Read()
	if err != nil {
		return stats, fmt.Errorf("failed to read CSV header: %w", err)
	}

	col := make(map[string]int)
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		switch key {
		case "nine":
			key = "course"
		case "hdcp":
			key = "handicap"
		}
		col[key] = i
	}
	if _, ok := col["hole"]; !ok {
		return stats, fmt.Errorf("CSV is missing a 'hole' column")
	}
	if _, ok := col["par"]; !ok {
		return stats, fmt.Errorf("CSV is missing a 'par' column")
	}

	c, err := store.GetOrCreateCourse(courseName)
	if err != nil {
		return stats, err
	}

	teeBoxes := make(map[string]TeeBox, len(tees))
	for _, name := range tees {
		if _, ok := col[strings.ToLower(name)]; !ok {
			return stats, fmt.Errorf("CSV has no column for tee %q", name)
		}
		tee, err := store.GetOrCreateTee(c.ID, name)
		if err != nil {
			return stats, err
		}
		teeBoxes[strings.ToLower(name)] = tee
	}

	intAt := func(record []string, key string) (int, bool) {
		idx, ok := col[key]
		if !ok || idx >= len(record) {
			return 0, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(record[idx]))
		if err != nil {
			return 0, false
		}
		return n, true
	}

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return stats, fmt.Errorf("failed to read CSV row: %w", err)
		}

		hole, ok := intAt(record, "hole")
		if !ok {
			log.Warn("Skipping CSV row without a hole number", "row", record)
			continue
		}
		par, ok := intAt(record, "par")
		if !ok {
			log.Warn("Skipping CSV row without a par", "hole", hole)
			continue
		}

		var handicap *int
		if h, ok := intAt(record, "handicap"); ok {
			handicap = &h
		}

		holeID, err := store.UpsertHole(c.ID, hole, par, handicap)
		if err != nil {
			return stats, err
		}
		stats.Holes++

		for key, tee := range teeBoxes {
			yards, ok := intAt(record, key)
			if !ok {
				continue
			}
			if err := store.SetTeeYardage(tee.ID, holeID, yards); err != nil {
				return stats, err
			}
			stats.Yardages++
		}
	}

	log.Info("Course CSV loaded", "course", courseName, "holes", stats.Holes, "yardages", stats.Yardages)
	return stats, nil
}
