package ir

// Keyword is a static combat/targeting ability carried by a card.
type Keyword string

const (
	KeywordHexproof       Keyword = "HEXPROOF"       // cannot be targeted by an opponent
	KeywordLifelink       Keyword = "LIFELINK"       // damage dealt heals the controller
	KeywordDeathtouch     Keyword = "DEATHTOUCH"     // any damage dealt is lethal
	KeywordIndestructible Keyword = "INDESTRUCTIBLE" // ignores lethal damage and Destroy
	KeywordHaste          Keyword = "HASTE"          // may attack the turn it arrives
	KeywordVigilance      Keyword = "VIGILANCE"      // attacking does not tap
	KeywordDefender       Keyword = "DEFENDER"       // cannot attack
)

// KeywordSet is an order-insensitive keyword collection, serialized as a
// plain list in card files.
type KeywordSet []Keyword

// Has reports whether the set contains the keyword.
func (ks KeywordSet) Has(k Keyword) bool {
	for _, have := range ks {
		if have == k {
			return true
		}
	}
	return false
}

// CardType classifies a card template.
type CardType string

const (
	TypeUnit        CardType = "UNIT"
	TypeSpell       CardType = "SPELL"
	TypeArtifact    CardType = "ARTIFACT"
	TypeEnchantment CardType = "ENCHANTMENT"
)

// Permanent reports whether a cast card of this type stays on the
// battlefield rather than resolving to the graveyard.
func (t CardType) Permanent() bool {
	switch t {
	case TypeUnit, TypeArtifact, TypeEnchantment:
		return true
	case TypeSpell:
		return false
	}
	return false
}
