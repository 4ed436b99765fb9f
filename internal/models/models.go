// Package models defines the records persisted by doro
package models

import (
	"time"
)

// SessionType identifies the kind of timed run a session records.
type SessionType string

const (
	Pomo       SessionType = "pomo"
	ShortBreak SessionType = "shortBreak"
	LongBreak  SessionType = "longBreak"
)

// SessionStatus is the lifecycle state of a session.
type SessionStatus string

const (
	StatusPaused    SessionStatus = "paused"
	StatusActive    SessionStatus = "active"
	StatusCompleted SessionStatus = "completed"
	StatusQuit      SessionStatus = "quit"
	StatusReset     SessionStatus = "reset"
)

// GroupStatus is the lifecycle state of a consecutive Pomodoro group.
type GroupStatus string

const (
	GroupActive    GroupStatus = "active"
	GroupCompleted GroupStatus = "completed"
	GroupBroken    GroupStatus = "broken"
)

// BonusItem is the reward attached to a completed consecutive group.
type BonusItem string

const (
	BonusWrapper BonusItem = "wrapper"
	BonusFlower  BonusItem = "bonusFlower"
)

type (
	AudioSettings struct {
		SoundsEnabled bool    `json:"soundsEnabled"`
		MusicEnabled  bool    `json:"musicEnabled"`
		Volume        float64 `json:"volume"`
	}

	UserSettings struct {
		AudioSettings *AudioSettings `json:"audioSettings,omitempty"`
		SoundOn       bool           `json:"soundOn"`
	}

	// User is the single local profile.
	User struct {
		CreatedAt time.Time    `json:"createdAt"`
		UserID    string       `json:"userId"`
		Username  string       `json:"username"`
		Settings  UserSettings `json:"settings"`
	}

	// Session records one Pomodoro or break run.
	Session struct {
		StartTime  time.Time     `json:"startTime"`
		EndTime    *time.Time    `json:"endTime"`
		SessionID  string        `json:"sessionId"`
		Type       SessionType   `json:"type"`
		Status     SessionStatus `json:"status"`
		FlowerType FlowerType    `json:"flowerType,omitempty"`
	}

	// Flower is a reward earned from a completed Pomodoro or a completed
	// consecutive group.
	Flower struct {
		EarnedAt                    time.Time  `json:"earnedAt"`
		FlowerID                    string     `json:"flowerId"`
		Type                        FlowerType `json:"type"`
		EarnedFromSessionID         string     `json:"earnedFromSessionId,omitempty"`
		EarnedFromConsecutivePomoID string     `json:"earnedFromConsecutivePomoId,omitempty"`
		IsBonus                     bool       `json:"isBonus"`
	}

	// Bouquet is the ordered collection of every earned flower.
	Bouquet struct {
		CreatedAt time.Time `json:"createdAt"`
		BouquetID string    `json:"bouquetId"`
		Flowers   []string  `json:"flowers"`
	}

	// DailyStat summarises the completed sessions of one local day.
	DailyStat struct {
		Date           string `json:"date"`
		PomosCompleted int    `json:"pomosCompleted"`
		FocusMinutes   int    `json:"focusMinutes"`
		BreakMinutes   int    `json:"breakMinutes"`
	}

	// Progress aggregates the user's overall progress.
	Progress struct {
		StreakCheckedOn  string      `json:"streakCheckedOn,omitempty"`
		DailyStats       []DailyStat `json:"dailyStats"`
		ConsecutivePomos int         `json:"consecutivePomos"`
		TotalPomos       int         `json:"totalPomos"`
		StreakActive     int         `json:"streakActive"`
		WrapperEarned    bool        `json:"wrapperEarned"`
	}

	// ConsecutivePomo groups Pomodoros completed back to back.
	ConsecutivePomo struct {
		ConsecutivePomoID string      `json:"consecutivePomoId"`
		Status            GroupStatus `json:"status"`
		BonusItem         BonusItem   `json:"bonusItem,omitempty"`
		SessionIDs        []string    `json:"sessionIds"`
	}
)

// Terminal reports whether a session in this status can no longer change.
func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusQuit, StatusReset:
		return true
	case StatusPaused, StatusActive:
		return false
	}

	return false
}

// IsBreak reports whether the session type is a break.
func (t SessionType) IsBreak() bool {
	switch t {
	case ShortBreak, LongBreak:
		return true
	case Pomo:
		return false
	}

	return false
}

// Valid reports whether t is one of the known session types.
func (t SessionType) Valid() bool {
	switch t {
	case Pomo, ShortBreak, LongBreak:
		return true
	}

	return false
}

// Minutes returns the rounded length of a session in minutes. Sessions
// without both timestamps count as zero.
func (s *Session) Minutes() int {
	if s.EndTime == nil || s.StartTime.IsZero() {
		return 0
	}

	return roundMinutes(s.EndTime.Sub(s.StartTime))
}

// Stat returns the daily stat for date, or nil if none was recorded.
func (p *Progress) Stat(date string) *DailyStat {
	for i := range p.DailyStats {
		if p.DailyStats[i].Date == date {
			return &p.DailyStats[i]
		}
	}

	return nil
}

// UpsertStat replaces the stat with the same date or appends it.
func (p *Progress) UpsertStat(stat DailyStat) {
	if existing := p.Stat(stat.Date); existing != nil {
		*existing = stat
		return
	}

	p.DailyStats = append(p.DailyStats, stat)
}
