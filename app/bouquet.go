package app

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/ayoisaiah/doro/internal/models"
	"github.com/ayoisaiah/doro/internal/ui"
)

const emptyBouquetMessage = "Seems like you're yet to start your journey to make a flower bouquet. Complete Pomodoros to earn flowers!"

type bouquetView struct {
	Flowers       []models.Flower `json:"flowers"`
	WrapperEarned bool            `json:"wrapperEarned"`
}

func newBouquetView(flowers []models.Flower, wrapper bool) *bouquetView {
	if flowers == nil {
		flowers = []models.Flower{}
	}

	return &bouquetView{
		Flowers:       flowers,
		WrapperEarned: wrapper,
	}
}

func (b *bouquetView) writeJSON(w io.Writer) error {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(out))

	return err
}

// rows lays the flowers out as a table with a header row.
func (b *bouquetView) rows(twentyFour bool) [][]string {
	layout := "Jan 02, 2006 03:04 PM"
	if twentyFour {
		layout = "Jan 02, 2006 15:04"
	}

	data := [][]string{{"#", "FLOWER", "EARNED FROM", "DATE"}}

	for i := range b.Flowers {
		f := b.Flowers[i]

		from := "Pomodoro"
		if f.IsBonus {
			from = "Bonus (3 in a row)"
		}

		data = append(data, []string{
			strconv.Itoa(i + 1),
			f.Type.Label(),
			from,
			f.EarnedAt.Local().Format(layout),
		})
	}

	return data
}

func (b *bouquetView) render(w io.Writer, twentyFour bool) error {
	if len(b.Flowers) == 0 {
		_, err := fmt.Fprintln(w, emptyBouquetMessage)
		return err
	}

	if b.WrapperEarned {
		if _, err := fmt.Fprintln(w, ui.Magenta("Your bouquet is wrapped")); err != nil {
			return err
		}
	}

	return ui.PrintTable(b.rows(twentyFour), w)
}

func printUser(w io.Writer, u *models.User) error {
	audio := u.Settings.AudioSettings

	sound := "off"
	if u.Settings.SoundOn {
		sound = "on"
	}

	data := [][]string{
		{"USERNAME", "SOUND", "VOLUME", "SINCE"},
		{
			u.Username,
			sound,
			"-",
			u.CreatedAt.Local().Format("Jan 02, 2006"),
		},
	}

	if audio != nil {
		data[1][2] = strconv.FormatFloat(audio.Volume, 'f', -1, 64)
	}

	return ui.PrintTable(data, w)
}
