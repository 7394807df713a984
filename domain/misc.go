package domain

import "strings"

type SortDir int8

const (
	SortDirAsc  = 1
	SortDirDesc = -1
)

// Table is a mongo collection name
type Table string

// UserId is the stable identifier resolved by the external identity collaborator
type UserId string

func (u UserId) ToLower() UserId {
	return UserId(strings.ToLower(string(u)))
}

func (u UserId) ToLowerPtr() *UserId {
	res := u.ToLower()
	return &res
}

func (u UserId) ToLowerStr() string {
	return strings.ToLower(string(u))
}

func (u UserId) IsEmpty() bool {
	return len(u) == 0
}

func (u UserId) Equals(v UserId) bool {
	return u.ToLowerStr() == v.ToLowerStr()
}

// SubscriptionTier gates free-token consumption. Billing owns upgrades.
type SubscriptionTier string

const (
	TierFree SubscriptionTier = "free"
	TierPlus SubscriptionTier = "plus"
	TierPro  SubscriptionTier = "pro"
)

// GrantsFreePromotion reports whether the tier may consume promotion tokens
// instead of being handed off to the paid flow.
func (t SubscriptionTier) GrantsFreePromotion() bool {
	return t == TierPlus || t == TierPro
}
