/*
batch.go - Parallel schedule generation across teams

PURPOSE:
  Generating schedules for a company's full team set is embarrassingly
  parallel: every (company, team, range) tuple is independent and the
  computation is pure. A small bounded worker pool fans the teams out;
  order WITHIN each team's range is preserved by the calculator, and the
  combined result is returned grouped per team in registry order.

SEE ALSO:
  - calculator.go: The per-team computation being fanned out
*/
package schedule

import "sync"

// DefaultBatchWorkers bounds the fan-out of an all-teams request.
const DefaultBatchWorkers = 4

// TeamSchedule is one team's ordered entries inside a batch result.
type TeamSchedule struct {
	TeamID  TeamID       `json:"teamId"`
	Entries []ShiftEntry `json:"entries"`
}

// ShiftsForAllTeams generates the inclusive range for every team of the
// company in parallel. Results are ordered as the teams are configured;
// each team's entries are in date order.
func (c *Calculator) ShiftsForAllTeams(companyID CompanyID, from, to Day) ([]TeamSchedule, error) {
	company, err := c.registry.GetCompany(companyID)
	if err != nil {
		return nil, err
	}
	if _, err := checkRange(from, to); err != nil {
		return nil, err
	}

	results := make([]TeamSchedule, len(company.Teams))
	jobs := make(chan int)
	var wg sync.WaitGroup

	workers := DefaultBatchWorkers
	if len(company.Teams) < workers {
		workers = len(company.Teams)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				phase := company.Teams[i]
				// Range and team are pre-validated; per-team errors
				// cannot occur here.
				entries, _ := c.ShiftsFor(companyID, phase.TeamID, from, to)
				results[i] = TeamSchedule{TeamID: phase.TeamID, Entries: entries}
			}
		}()
	}
	for i := range company.Teams {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results, nil
}
