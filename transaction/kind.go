package transaction

// Kind discriminates the closed set of transaction shapes.
type Kind int

const (
	KindIn Kind = iota + 1
	KindOut
	KindIntra
)

func (k Kind) String() string {
	switch k {
	case KindIn:
		return "in"
	case KindOut:
		return "out"
	case KindIntra:
		return "intra"
	default:
		return "invalid"
	}
}

// Type is the business classification of an in or out transaction.
type Type string

const (
	TypeAirdrop  Type = "AIRDROP"
	TypeBuy      Type = "BUY"
	TypeDonate   Type = "DONATE"
	TypeFee      Type = "FEE"
	TypeGift     Type = "GIFT"
	TypeHardfork Type = "HARDFORK"
	TypeIncome   Type = "INCOME"
	TypeInterest Type = "INTEREST"
	TypeMining   Type = "MINING"
	TypeSell     Type = "SELL"
	TypeStaking  Type = "STAKING"
	TypeWages    Type = "WAGES"
)

var inTypes = map[Type]bool{
	TypeAirdrop:  true,
	TypeBuy:      true,
	TypeDonate:   true,
	TypeGift:     true,
	TypeHardfork: true,
	TypeIncome:   true,
	TypeInterest: true,
	TypeMining:   true,
	TypeStaking:  true,
	TypeWages:    true,
}

var outTypes = map[Type]bool{
	TypeDonate: true,
	TypeFee:    true,
	TypeGift:   true,
	TypeSell:   true,
}
