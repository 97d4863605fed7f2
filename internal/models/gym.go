package models

import "time"

// Tier тариф SaaS-подписки клуба.
type Tier string

const (
	TierStarter    Tier = "starter"
	TierPro        Tier = "pro"
	TierEnterprise Tier = "enterprise"
)

// Unlimited значение лимита для тарифа без ограничений.
const Unlimited = -1

// TierInfo описание тарифа для страницы оплаты.
type TierInfo struct {
	Tier       Tier    `json:"tier"`
	MemberCap  int     `json:"member_cap"`
	PriceMonth float64 `json:"price_month"`
}

// Tiers возвращает все тарифы в порядке возрастания.
func Tiers() []TierInfo {
	return []TierInfo{
		{Tier: TierStarter, MemberCap: 50, PriceMonth: 29},
		{Tier: TierPro, MemberCap: 500, PriceMonth: 99},
		{Tier: TierEnterprise, MemberCap: Unlimited, PriceMonth: 299},
	}
}

// MemberCap лимит активных участников тарифа. Неизвестный тариф считается starter.
func (t Tier) MemberCap() int {
	for _, info := range Tiers() {
		if info.Tier == t {
			return info.MemberCap
		}
	}
	return Tiers()[0].MemberCap
}

// Valid сообщает, существует ли тариф.
func (t Tier) Valid() bool {
	for _, info := range Tiers() {
		if info.Tier == t {
			return true
		}
	}
	return false
}

// Gym клуб, корень арендатора.
type Gym struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	Tier      Tier      `json:"tier"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateGymRequest данные для создания клуба.
type CreateGymRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Slug    string `json:"slug" validate:"required,max=100"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=500"`
}

// UpdateGymSettingsRequest изменяемые настройки клуба.
type UpdateGymSettingsRequest struct {
	Name    *string `json:"name" validate:"omitempty,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=500"`
}

// ChangeTierRequest смена тарифа.
type ChangeTierRequest struct {
	Tier Tier `json:"tier" validate:"required,oneof=starter pro enterprise"`
}
