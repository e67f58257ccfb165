package character

import "github.com/tomz197/portfolio/internal/draw"

// Mood selects the head colours.
type Mood int

const (
	MoodHappy Mood = iota
	MoodExcited
	MoodCurious
	MoodCreative
)

func (m Mood) String() string {
	switch m {
	case MoodExcited:
		return "excited"
	case MoodCurious:
		return "curious"
	case MoodCreative:
		return "creative"
	default:
		return "happy"
	}
}

// headGradients are the top and bottom head colours per mood.
var headGradients = map[Mood][2]draw.Color{
	MoodHappy:    {draw.MustHex("#4ade80"), draw.MustHex("#22c55e")},
	MoodExcited:  {draw.MustHex("#facc15"), draw.MustHex("#eab308")},
	MoodCurious:  {draw.MustHex("#38bdf8"), draw.MustHex("#0ea5e9")},
	MoodCreative: {draw.MustHex("#c084fc"), draw.MustHex("#a855f7")},
}

// HeadColors returns the top and bottom head colours of a mood.
func HeadColors(m Mood) (top, bottom draw.Color) {
	g, ok := headGradients[m]
	if !ok {
		g = headGradients[MoodHappy]
	}
	return g[0], g[1]
}

type reaction struct {
	mood Mood
	say  string
}

var reactions = map[string]reaction{
	"about":    {MoodCurious, "Learn more about me! 📖"},
	"skills":   {MoodExcited, "Check out my skills! 💪"},
	"projects": {MoodCreative, "My cosmic creations! 🌌"},
	"music":    {MoodHappy, "Let's jam! 🎵"},
	"contact":  {MoodExcited, "Let's connect! 📡"},
}

// SetMood changes the head colours.
func (c *Character) SetMood(m Mood) {
	if c.disabled {
		return
	}
	c.mood = m
}

// ReactToSection sets the mood for a page section that came into view and
// says the section's line. Unknown sections make the character happy
// without a word.
func (c *Character) ReactToSection(id string) {
	if c.disabled {
		return
	}
	r, ok := reactions[id]
	if !ok {
		c.SetMood(MoodHappy)
		return
	}
	c.SetMood(r.mood)
	c.Speak(r.say)
}
