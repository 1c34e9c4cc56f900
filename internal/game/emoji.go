package game

// Rarity is a cosmetic tier shown in the rarity panel. It has no effect on
// how often a glyph spawns.
type Rarity int

const (
	Common Rarity = iota
	Rare
	Epic
	Legendary
	Mythic
)

var rarityNames = [...]string{"Common", "Rare", "Epic", "Legendary", "Mythic"}

// RarityOrder lists tiers from most to least common.
var RarityOrder = []Rarity{Common, Rare, Epic, Legendary, Mythic}

func (r Rarity) String() string {
	if r < 0 || int(r) >= len(rarityNames) {
		return "Unknown"
	}
	return rarityNames[r]
}

// DisplayChance is the advertised odds of the tier. Spawning ignores it.
func (r Rarity) DisplayChance() string {
	switch r {
	case Common:
		return "60%"
	case Rare:
		return "25%"
	case Epic:
		return "10%"
	case Legendary:
		return "4.5%"
	case Mythic:
		return "0.5%"
	}
	return "0%"
}

// Emoji is one entry of the spawn table.
type Emoji struct {
	Glyph  string
	Rarity Rarity
}

// Emojis is the spawn table. Some glyphs appear twice with different tiers;
// both entries take part in the uniform draw.
var Emojis = []Emoji{
	{"👻", Common},
	{"💥", Common},
	{"👾", Common},
	{"🤖", Common},
	{"💩", Common},
	{"🤡", Common},
	{"🔥", Common},
	{"🛸", Common},
	{"🚀", Common},
	{"🥑", Common},
	{"💀", Common},
	{"🌪️", Common},
	{"👑", Rare},
	{"💎", Rare},
	{"🦊", Rare},
	{"🍕", Rare},
	{"🎸", Rare},
	{"👽", Rare},

	{"🌟", Epic},
	{"🐙", Epic},
	{"🌋", Epic},
	{"🧩", Epic},
	{"🐉", Legendary},
	{"⚡", Rare},
	{"🍩", Common},
	{"🛡️", Rare},
	{"🔮", Epic},
	{"🌌", Legendary},

	{"💎", Legendary},
	{"🛡️", Epic},
	{"☠️", Rare},
	{"🎃", Common},
	{"🍄", Common},
	{"🦄", Legendary},
	{"🌋", Legendary},
	{"🌈", Epic},
	{"☄️", Mythic},
	{"⚛️", Mythic},
}

// Glyphs returns the glyph column of the spawn table, duplicates included.
func Glyphs() []string {
	out := make([]string, len(Emojis))
	for i, e := range Emojis {
		out[i] = e.Glyph
	}
	return out
}

// EmojisByRarity returns the table sorted by tier, keeping table order
// within a tier.
func EmojisByRarity() []Emoji {
	out := make([]Emoji, 0, len(Emojis))
	for _, r := range RarityOrder {
		for _, e := range Emojis {
			if e.Rarity == r {
				out = append(out, e)
			}
		}
	}
	return out
}
