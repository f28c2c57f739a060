package model

// Ключи игровых настроек. Значения хранятся строками,
// движки читают их в момент каждой операции
const (
	SettingRandomAttackCost     = "random_attack_cost"
	SettingTargetedAttackCost   = "targeted_attack_cost"
	SettingTheftCooldownMinutes = "theft_cooldown_minutes"
	SettingTheftSuccessChance   = "theft_success_chance"
	SettingTheftDefenseChance   = "theft_defense_chance"
	SettingTheftDefensePenalty  = "theft_defense_penalty"
	SettingCasinoWinChance      = "casino_win_chance"
	SettingMinTheftAmount       = "min_theft_amount"
	SettingMaxTheftAmount       = "max_theft_amount"
)

// DefaultSettings - значения по умолчанию, используются при отсутствии записи
var DefaultSettings = map[string]string{
	SettingRandomAttackCost:     "0",
	SettingTargetedAttackCost:   "50",
	SettingTheftCooldownMinutes: "30",
	SettingTheftSuccessChance:   "40",
	SettingTheftDefenseChance:   "20",
	SettingTheftDefensePenalty:  "10",
	SettingCasinoWinChance:      "30",
	SettingMinTheftAmount:       "5",
	SettingMaxTheftAmount:       "15",
}

// SettingKeys - перечень допустимых ключей для админских операций
var SettingKeys = []string{
	SettingRandomAttackCost,
	SettingTargetedAttackCost,
	SettingTheftCooldownMinutes,
	SettingTheftSuccessChance,
	SettingTheftDefenseChance,
	SettingTheftDefensePenalty,
	SettingCasinoWinChance,
	SettingMinTheftAmount,
	SettingMaxTheftAmount,
}
