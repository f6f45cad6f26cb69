package config

// DefaultRulesSpec carries the rule tables of the current event. A YAML file
// pointed to by RULES_PATH overrides individual sections wholesale.
func DefaultRulesSpec() RulesSpec {
	return RulesSpec{
		TicketPattern:           `^(Konferenzticket|OpenStreetMap-Samstag).*`,
		WorkshopCategoryPattern: `^Workshop`,
		NameBreakLen:            15,

		Questions: []QuestionMapping{
			{Code: "YFHZVZCA", Field: "namensschild"},
			{Code: "MBWBQDPJ", Field: "firmenname"},
			{Code: "NGMAWELJ", Field: "nickname"},
			{Code: "EA7G3AUG", Field: "engel_name"},
			{Code: "NAKTGXCW", Field: "engel_name2"},
			{Code: "YNH7QNRG", Field: "osm_name"},
		},

		Addons: []AddonMapping{
			{Product: "Geographischer Stadtrundgang", Field: "ex_1"},
			{Product: "Konferenz-T-Shirt", Field: "tshirt"},
			{Product: "Konferenz-T-Shirt Helfende", Field: "tshirt_helfer"},
			{Product: "Ich nehme an der Abendveranstaltung teil.", Field: "av"},
		},

		// Typo fixes and affiliation fragments that must not end up on a badge.
		StripFromNames: []string{
			`FD Vermesssung und Geodaten Stadt Hildesheim[ ]*`,
			`Staatsbibliothek zu Berlin[ ]*`,
			`Development and Operations[ ]*`,
			` / Sourcepole[ ]*`,
			`Software Development[ ]*`,
			`Web GIS Freelance[ ]*`,
			`.* Consultants[ ]*`,
			`.* GmbH[ ]*`,
			`FH Aachen[ ]*`,
			`NTI Deutschland.*`,
		},

		Companies: []CompanyRuleSpec{
			{Canonical: "Bundesamt für Kartographie und Geodäsie", Pattern: `(BKG|Bundesamt für Kartographie und Geodäsie)`},
			{Canonical: "WhereGroup GmbH", Pattern: `WhereGrouo?p GmbH`, IgnoreCase: true},
			{Canonical: "DB Systel GmbH", Pattern: `DB Systel GmbH c/o Deutsche Bahn AG`, Literal: true},
			{Canonical: "Landesamt für Geoinformation und Landesvermessung Niedersachsen", Pattern: `LGLN|Landesamt für Geoinformation und Landesvermessung Niedersachsen`, IgnoreCase: true},
			{Canonical: "Landesamt für Vermessung und Geobasisinformation Rheinland-Pfalz", Pattern: `Landesamt für Vermessung und Geobasisinformation Rheinland-Pfalz`, IgnoreCase: true},
			{Canonical: "Landesamt für Geoinformation und Landentwicklung Baden-Württemberg", Pattern: `Landesamt für Geoinformation und Landentwicklung (Baden-Württemberg|BW)`, IgnoreCase: true},
			{Canonical: "Landesvermessung und Geobasisinformation Brandenburg", Pattern: `^LGB$`},
			{Canonical: "Staatsbibliothek zu Berlin", Pattern: `staatsbibliothek zu berlin`, IgnoreCase: true},
			{Canonical: "Umweltbundesamt (UBA)", Pattern: `umweltbundesamt|\(UBA\)`, IgnoreCase: true},
			{Canonical: "Stadt Leipzig", Pattern: `Stadt Leipzig`, IgnoreCase: true},
			{Canonical: "Technische Universität Chemnitz", Pattern: `Technische Universität Chemnitz`, Literal: true},
			{Canonical: "Bezirksamt Tempelhof-Schöneberg von Berlin", Pattern: `Bezirksamt Tempelhof-Schöneberg von Berlin`, IgnoreCase: true},
			{Canonical: "DB Fahrwegdienste GmbH", Pattern: `DB Fahrwegdienste GmbH`, IgnoreCase: true},
			{Canonical: "Landesamt für Geoinformation & Landesvermessung Niedersachsen", Pattern: `LGLN`, Literal: true},
			{Canonical: "Leibniz-Zentrum für Agrarlandschaftsforschung (ZALF)", Pattern: `ZALF`, Literal: true},
			{Canonical: "Deutsches Zentrum für Luft- und Raumfahrt (DLR)", Pattern: `Deutsches Zentrum für Luft- und Raumfahrt`, Literal: true},
		},
	}
}
