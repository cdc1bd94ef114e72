package protocol

import "fmt"

// Card is an opaque 3-character code "RankSuitSet", e.g. "AC1":
// rank A,2..9,1(=10),J,Q,K; suit C,D,H,S plus joker colors R,B;
// set digit 1..9. The domain is the closed 54-card Literature deck.
type Card string

// AllCards is the full deck, grouped by set. The embedded set digit of
// every card is checked against its group once at startup.
var AllCards = [...]Card{
	// Set 1: lower clubs
	"AC1", "2C1", "3C1", "4C1", "5C1", "6C1",
	// Set 2: higher clubs
	"8C2", "9C2", "1C2", "JC2", "QC2", "KC2",
	// Set 3: lower diamonds
	"AD3", "2D3", "3D3", "4D3", "5D3", "6D3",
	// Set 4: higher diamonds
	"8D4", "9D4", "1D4", "JD4", "QD4", "KD4",
	// Set 5: lower hearts
	"AH5", "2H5", "3H5", "4H5", "5H5", "6H5",
	// Set 6: higher hearts
	"8H6", "9H6", "1H6", "JH6", "QH6", "KH6",
	// Set 7: lower spades
	"AS7", "2S7", "3S7", "4S7", "5S7", "6S7",
	// Set 8: higher spades
	"8S8", "9S8", "1S8", "JS8", "QS8", "KS8",
	// Set 9: sevens and jokers
	"7C9", "7D9", "7H9", "7S9", "JR9", "JB9",
}

var setNames = [...]string{
	"Lower Clubs",
	"Higher Clubs",
	"Lower Diamonds",
	"Higher Diamonds",
	"Lower Hearts",
	"Higher Hearts",
	"Lower Spades",
	"Higher Spades",
	"Sevens & Jokers",
}

const cardsPerSet = 6

var validCards map[Card]struct{}

func init() {
	validCards = make(map[Card]struct{}, len(AllCards))
	for i, card := range AllCards {
		expectedSet := SetID(i/cardsPerSet) + MinSetID
		if len(card) != 3 {
			panic(fmt.Sprintf("malformed card code %q", card))
		}
		if card.Set() != expectedSet {
			panic(fmt.Sprintf("card %q is listed in set %d", card, expectedSet))
		}
		validCards[card] = struct{}{}
	}
}

func (c Card) Valid() bool {
	_, ok := validCards[c]
	return ok
}

func (c Card) Rank() byte {
	return c[0]
}

func (c Card) Suit() byte {
	return c[1]
}

func (c Card) Set() SetID {
	return SetID(c[2] - '0')
}

// SetName returns the display name of a set, or "" for an invalid id.
func SetName(id SetID) string {
	if !id.Valid() {
		return ""
	}
	return setNames[id-MinSetID]
}

// CardsInSet returns the six cards forming the given set.
func CardsInSet(id SetID) []Card {
	if !id.Valid() {
		return nil
	}
	offset := int(id-MinSetID) * cardsPerSet
	cards := make([]Card, cardsPerSet)
	copy(cards, AllCards[offset:offset+cardsPerSet])
	return cards
}
