package internal

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	maxIncorrectAttempts = 3
	maxTeamsPerClue      = 3
	firstCompletionAward = 100
)

// ------------------- Clue claim -------------------

// POST /submit-code {team, clueCode}
func SubmitCode(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		team := c.PostForm("team")
		clueCode := c.PostForm("clueCode")

		var target string
		err := store.Do(func(d *Data) {
			t := d.Teams[team]
			if team == "" || t == nil {
				target = dashboardURL(team, "Invalid team.", "error")
				return
			}
			if t.Disqualified {
				target = dashboardURL(team, "Your team has been disqualified.", "error")
				return
			}

			cl := d.Clue(clueCode)
			if cl == nil {
				t.Attempts[clueCode]++
				t.TotalIncorrectAttempts++
				if t.TotalIncorrectAttempts >= maxIncorrectAttempts {
					t.Disqualified = true
				}
				if err := d.SaveTeams(); err != nil {
					log.Printf("Error saving teams: %v", err)
					target = dashboardURL(team, "System error. Please try again.", "error")
					return
				}
				var msg string
				switch maxIncorrectAttempts - t.TotalIncorrectAttempts {
				case 2:
					msg = "Invalid code! 2 attempts remaining."
				case 1:
					msg = "Invalid code! Last attempt remaining!"
				default:
					msg = "Too many incorrect attempts (3/3). Your team is disqualified."
				}
				target = dashboardURL(team, msg, "error")
				return
			}

			if cl.CompletedByTeam(team) {
				target = dashboardURL(team, "You already completed this clue.", "info")
				return
			}
			if cl.Locked {
				target = dashboardURL(team, "This clue has been completed by another team.", "info")
				return
			}

			// Teams working this clue right now: claimed it and not yet done.
			working := 0
			for name, other := range d.Teams {
				if other.CurrentClue != nil && *other.CurrentClue == clueCode && !cl.CompletedByTeam(name) {
					working++
				}
			}
			if working >= maxTeamsPerClue {
				target = dashboardURL(team, "Maximum teams (3) already working on this clue. Try another one.", "error")
				return
			}

			if !contains(cl.Teams, team) {
				cl.Teams = append(cl.Teams, team)
			}
			t.TotalIncorrectAttempts = 0
			code := cl.Code
			t.CurrentClue = &code

			if err := d.SaveBoth(); err != nil {
				log.Printf("Error saving data: %v", err)
				target = dashboardURL(team, "System error. Please try again.", "error")
				return
			}

			log.Printf("Team %s claimed clue %s", team, clueCode)
			target = mapURL(cl, team)
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.Redirect(http.StatusFound, target)
	}
}

// ------------------- Clue verification -------------------

// POST /verify-clue {team, clueCode, enteredCode} => JSON
func VerifyClue(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Team        string `json:"team"`
			ClueCode    string `json:"clueCode"`
			EnteredCode string `json:"enteredCode"`
		}
		if err := c.BindJSON(&req); err != nil {
			return
		}

		status := 200
		var resp gin.H
		err := store.Do(func(d *Data) {
			t := d.Teams[req.Team]
			if req.Team == "" || t == nil {
				status, resp = 400, gin.H{"success": false, "message": "Invalid team."}
				return
			}
			cl := d.Clue(req.ClueCode)
			if cl == nil {
				status, resp = 400, gin.H{"success": false, "message": "Invalid clue code."}
				return
			}

			if req.EnteredCode != cl.VerificationCode {
				resp = gin.H{"success": false, "message": "Incorrect code. Please try again."}
				return
			}

			if !cl.CompletedByTeam(req.Team) {
				cl.CompletedBy = append(cl.CompletedBy, req.Team)
				if !contains(cl.Teams, req.Team) {
					cl.Teams = append(cl.Teams, req.Team)
				}
				if len(cl.CompletedBy) == 1 {
					t.Points += firstCompletionAward
					cl.Locked = true
					log.Printf("Awarded %d points to %s for first completion of %s",
						firstCompletionAward, req.Team, cl.Code)
				}
				t.CurrentClue = nil

				if err := d.SaveBoth(); err != nil {
					log.Printf("Error saving data: %v", err)
					status, resp = 500, gin.H{"success": false, "message": "Error saving progress"}
					return
				}
			}

			msg := "Clue verified!"
			if len(cl.CompletedBy) == 1 {
				msg = "Bomb defused! 100 points awarded!"
			}
			resp = gin.H{"success": true, "points": t.Points, "message": msg}
		})
		if err != nil {
			c.JSON(500, gin.H{"success": false, "message": "Error loading data"})
			return
		}
		c.JSON(status, resp)
	}
}

// ------------------- Admin: dumps -------------------

func AdminTeams(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var teams map[string]*Team
		if err := store.Do(func(d *Data) { teams = d.Teams }); err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.JSON(200, teams)
	}
}

func AdminClues(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var codes []*Clue
		if err := store.Do(func(d *Data) { codes = d.Codes }); err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.JSON(200, codes)
	}
}

// GET /debug-clue/:code
func DebugClue(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		code := c.Param("code")

		status := 200
		var resp gin.H
		err := store.Do(func(d *Data) {
			cl := d.Clue(code)
			if cl == nil {
				status = 404
				return
			}
			working := []string{}
			for name, t := range d.Teams {
				if t.CurrentClue != nil && *t.CurrentClue == code {
					working = append(working, name)
				}
			}
			resp = gin.H{"clue": cl, "teams": working}
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		if status == 404 {
			c.String(404, "Clue not found")
			return
		}
		c.JSON(200, resp)
	}
}

// ------------------- Admin: teams -------------------

// POST /create-team {name, password}
func CreateTeam(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.PostForm("name")
		password := c.PostForm("password")
		if name == "" || password == "" {
			c.String(400, "Team name and password are required.")
			return
		}

		status, msg := 200, "Team created successfully."
		err := store.Do(func(d *Data) {
			if d.Teams[name] != nil {
				status, msg = 400, "Team already exists."
				return
			}
			hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)
			d.Teams[name] = NewTeam(string(hash))
			if err := d.SaveTeams(); err != nil {
				log.Printf("Error saving teams: %v", err)
				status, msg = 500, "Error creating team."
			}
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.String(status, msg)
	}
}

// POST /create-admin {password} — one-time bootstrap
func CreateAdmin(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		password := c.PostForm("password")

		status, msg := 200, "Admin account created successfully"
		err := store.Do(func(d *Data) {
			if d.Teams["admin"] != nil {
				status, msg = 400, "Admin account already exists"
				return
			}
			hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)
			d.Teams["admin"] = NewTeam(string(hash))
			if err := d.SaveTeams(); err != nil {
				log.Printf("Error saving teams: %v", err)
				status, msg = 500, "Failed to create admin account"
			}
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.String(status, msg)
	}
}

// ------------------- Admin: resets -------------------

// POST /reset-team {team}
func ResetTeam(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		team := c.PostForm("team")

		status, msg := 200, "Team reset successfully. Clue counts updated."
		err := store.Do(func(d *Data) {
			t := d.Teams[team]
			if team == "" || t == nil {
				status, msg = 400, "Invalid team."
				return
			}

			for _, cl := range d.Codes {
				cl.Teams = remove(cl.Teams, team)
				if cl.CompletedByTeam(team) {
					cl.CompletedBy = remove(cl.CompletedBy, team)
					if len(cl.CompletedBy) == 0 {
						cl.Locked = false
					}
				}
			}
			t.Reset()

			if err := d.SaveBoth(); err != nil {
				log.Printf("Error saving data: %v", err)
				status, msg = 500, "Error saving data"
			}
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.String(status, msg)
	}
}

// POST /reset-all — every team to defaults, every clue reopened
func ResetAll(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, msg := 200, "All teams and clues reset successfully."
		err := store.Do(func(d *Data) {
			for _, t := range d.Teams {
				t.Reset()
			}
			if err := d.SaveTeams(); err != nil {
				log.Printf("Error saving teams: %v", err)
				status, msg = 500, "Error resetting teams."
				return
			}

			for _, cl := range d.Codes {
				cl.Teams = []string{}
				cl.CompletedBy = []string{}
				cl.Locked = false
			}
			if err := d.SaveCodes(); err != nil {
				log.Printf("Error saving codes: %v", err)
				status, msg = 500, "Error resetting clues."
			}
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.String(status, msg)
	}
}

// POST /reset-points — points only, completion state untouched
func ResetPoints(store *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		status, msg := 200, "All points reset successfully."
		err := store.Do(func(d *Data) {
			for _, t := range d.Teams {
				t.Points = 0
			}
			if err := d.SaveTeams(); err != nil {
				log.Printf("Error saving teams: %v", err)
				status, msg = 500, "Error resetting points."
			}
		})
		if err != nil {
			c.String(500, "Error loading data. Please try again later.")
			return
		}
		c.String(status, msg)
	}
}
