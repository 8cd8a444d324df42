package internal

type Team struct {
	Password               string         `json:"password"`
	Points                 int            `json:"points"`
	CurrentClue            *string        `json:"currentClue"`
	Attempts               map[string]int `json:"attempts"`
	TotalIncorrectAttempts int            `json:"totalIncorrectAttempts"`
	Disqualified           bool           `json:"disqualified"`
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Clue struct {
	Code             string   `json:"code"`
	Location         Location `json:"location"`
	VerificationCode string   `json:"verificationCode"`
	Teams            []string `json:"teams"`
	CompletedBy      []string `json:"completedBy"`
	Locked           bool     `json:"locked"`
}

// NewTeam returns a team in its default state holding the given password hash.
func NewTeam(passwordHash string) *Team {
	return &Team{
		Password: passwordHash,
		Attempts: map[string]int{},
	}
}

// Reset restores the team to its default state, keeping the password hash.
func (t *Team) Reset() {
	*t = Team{
		Password: t.Password,
		Attempts: map[string]int{},
	}
}

// normalize fills in optional fields older data files may lack, so handlers
// never check for nil maps or arrays.
func (t *Team) normalize() {
	if t.Attempts == nil {
		t.Attempts = map[string]int{}
	}
}

func (cl *Clue) normalize() {
	if cl.Teams == nil {
		cl.Teams = []string{}
	}
	if cl.CompletedBy == nil {
		cl.CompletedBy = []string{}
	}
}

func (cl *Clue) CompletedByTeam(team string) bool {
	return contains(cl.CompletedBy, team)
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func remove(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
