package campaign

// BuiltIn returns the campaign shipped with the engine. A YAML campaign
// file replaces it wholesale.
func BuiltIn() *Campaign {
	return &Campaign{Levels: []Level{
		{
			Name:            "first-blood",
			Description:     "Stand up a tiny harvest grid in a forgotten subnet and stay unnoticed.",
			StartingCredits: 500,
			MaxTier:         3,
			ThreatFloor:     1,
			MinAttackChance: 1,
			VictoryCredits:  50_000,
			VictoryReports:  1,
			Insane:          InsaneMultipliers{AttackChance: 2, Severity: 1.5, Income: 0.8},
		},
		{
			Name:            "gray-market",
			Description:     "Scale the grid into serious money while the brokers start asking questions.",
			StartingCredits: 5_000,
			MaxTier:         8,
			ThreatFloor:     4,
			MinAttackChance: 2,
			VictoryCredits:  10_000_000,
			VictoryReports:  10,
			Insane:          InsaneMultipliers{AttackChance: 2.5, Severity: 1.75, Income: 0.75},
		},
		{
			Name:            "syndicate-war",
			Description:     "The cartels know where you live. Outearn them anyway.",
			StartingCredits: 100_000,
			MaxTier:         15,
			ThreatFloor:     9,
			MinAttackChance: 3,
			VictoryCredits:  50_000_000_000,
			VictoryReports:  50,
			Insane:          InsaneMultipliers{AttackChance: 3, Severity: 2, Income: 0.7},
		},
		{
			Name:            "total-war",
			Description:     "Every agency on the planet is watching the grid. Finish it.",
			StartingCredits: 10_000_000,
			MaxTier:         25,
			ThreatFloor:     15,
			MinAttackChance: 4,
			VictoryCredits:  1_000_000_000_000_000,
			VictoryReports:  250,
			Insane:          InsaneMultipliers{AttackChance: 4, Severity: 2.5, Income: 0.6},
		},
	}}
}
