package game

// Outcome is the state of a round from the human side's point of view.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// OutcomeReason is an outcome with the head counts behind it.
type OutcomeReason struct {
	Outcome        Outcome
	HumansAlive    int
	HumansTotal    int
	ComputersAlive int
	ComputersTotal int
	Description    string
}

// DetermineOutcome evaluates a set of agents. Losing every human wins over
// everything else, so a round where the last human and last opponent fall
// on the same tick is lost.
func DetermineOutcome(agents []*Agent) OutcomeReason {
	var res OutcomeReason
	for _, a := range agents {
		switch a.Control {
		case ControlHuman:
			res.HumansTotal++
			if !a.Dead {
				res.HumansAlive++
			}
		case ControlComputer:
			res.ComputersTotal++
			if !a.Dead {
				res.ComputersAlive++
			}
		}
	}

	switch {
	case res.HumansAlive == 0 && res.ComputersAlive == 0:
		res.Outcome = OutcomeLost
		res.Description = "mutual_elimination"
	case res.HumansAlive == 0:
		res.Outcome = OutcomeLost
		res.Description = "humans_eliminated"
	case res.ComputersAlive == 0:
		res.Outcome = OutcomeWon
		res.Description = "opponents_eliminated"
	default:
		res.Outcome = OutcomePlaying
		res.Description = "in_progress"
	}
	return res
}
