package course

import (
	"github.com/charmbracelet/log"

	"github.com/beeropen/scramble/internal/event"
)

// tableProvider serves par/yardage lookups from in-memory tables.
type tableProvider struct {
	pars  map[int]int
	yards map[int]int
}

func (p tableProvider) Par(hole int) (int, bool) {
	par, ok := p.pars[hole]
	return par, ok
}

func (p tableProvider) Yardage(hole int) (int, bool) {
	y, ok := p.yards[hole]
	return y, ok
}

// Resolve picks the authoritative par source for the event: the configured
// scoring course (with yardages when a tee is configured), else the legacy
// flat table, else a provider with no pars at all.
func Resolve(store Store, settings event.Settings) (ParProvider, error) {
	if settings.ScoringCourseID != nil {
		pars, err := store.CoursePars(*settings.ScoringCourseID)
		if err != nil {
			return nil, err
		}
		if len(pars) > 0 {
			yards := map[int]int{}
			if settings.ScoringTeeID != nil {
				yards, err = store.TeeYardages(*settings.ScoringTeeID)
				if err != nil {
					return nil, err
				}
			}
			return tableProvider{pars: pars, yards: yards}, nil
		}
		log.Warn("Scoring course configured but has no holes, falling back to legacy pars", "courseID", *settings.ScoringCourseID)
	}

	pars, err := store.LegacyPars()
	if err != nil {
		return nil, err
	}
	return tableProvider{pars: pars, yards: map[int]int{}}, nil
}
