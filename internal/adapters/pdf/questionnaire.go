package pdf

import (
	"strings"

	"github.com/NaoufalLabrihmi/EMP-Gestion/internal/domain"
)

// Questionnaire lays out the two-page German personnel questionnaire
// ("Personalfragebogen") for e. The template is static; only the employee's
// identity fields and the as-of string are filled in.
func Questionnaire(e domain.Employee, asOf string) Document {
	name := e.FullName()
	male, female := sexOptions(e.Sex)

	return Document{
		Title: "Personalfragebogen " + name,
		Pages: []Page{
			{
				Number: "1",
				AsOf:   asOf,
				Blocks: []Block{
					header(),
					NameBar{Label: "Name des Mitarbeiters", Value: name, NumberLabel: "Personalnummer", Number: e.PersonalNumber},
					Section{Title: "Persönliche Angaben", Rows: []Row{
						{Cells: []Cell{
							{Label: "Familienname", Sub: "ggf. Geburtsname", Value: e.Surname, Weight: 2},
							{Label: "Vorname", Value: e.Name, Weight: 1.3},
						}},
						{Cells: []Cell{
							{Label: "Straße und Hausnummer", Sub: "inkl. Anschriftenzusatz", Weight: 2},
							{Label: "PLZ, Ort", Weight: 1.3},
						}},
						{Cells: []Cell{
							{Label: "Geburtsdatum", Value: e.BirthDate, Weight: 1},
							{Label: "Geschlecht", Weight: 1, Options: []Option{{Label: "männlich", Checked: male}, {Label: "weiblich", Checked: female}}},
							{Label: "Versicherungsnummer", Sub: "gem. Sozialvers.Ausweis", Weight: 1.3},
							{Label: "Familienstand", Weight: 0.8},
						}},
						{Cells: []Cell{
							{Label: "Geburtsort, -land", Sub: "- nur bei fehlender Versicherungs-Nr.", Weight: 1.3},
							{Label: "Schwerbehindert", Weight: 0.8, Options: yesNo()},
							{Label: "Staatsangehörigkeit", Value: e.Nationality, Weight: 1},
							{Label: "Arbeitnehmernummer", Sub: "Sozialkasse - Bau", Weight: 1, Shaded: true},
						}},
						{Cells: []Cell{
							{Label: "Kontonummer", Sub: "(IBAN)", Weight: 2},
							{Label: "Bankleitzahl/Bankbezeichnung (BIC)", Weight: 1.3},
						}},
					}},
					Section{Title: "Beschäftigung", Rows: []Row{
						{Cells: []Cell{
							{Label: "Eintrittsdatum", Weight: 1},
							{Label: "Ersteintrittsdatum", Weight: 1},
							{Label: "Betriebsstätte", Weight: 1.3, Shaded: true},
						}},
						{Cells: []Cell{
							{Label: "Berufsbezeichnung", Weight: 1},
							{Label: "Ausgeübte Tätigkeit", Weight: 1.3},
						}},
						{Cells: []Cell{
							{Weight: 1, Options: []Option{{Label: "Hauptbeschäftigung"}, {Label: "Nebenbeschäftigung"}}},
							{Label: "Üben Sie weitere Beschäftigungen aus?", Weight: 1.3, Options: yesNo()},
						}},
						{Cells: []Cell{
							{Label: "Höchster Schulabschluss", Weight: 1, Stacked: true, Options: options(
								"ohne Schulabschluss",
								"Haupt-/Volksschulabschluss",
								"Mittlere Reife/gleichwertiger Abschluss",
								"Abitur/Fachabitur",
							)},
							{Label: "Höchste Berufsausbildung", Weight: 1.3, Stacked: true, Options: options(
								"ohne beruflichen Ausbildungsabschluss",
								"Anerkannte Berufsausbildung",
								"Meister/Techniker/gleichwertiger Fachschulabschluss",
								"Bachelor",
								"Diplom/Magister/Master/Staatsexamen",
								"Promotion",
							)},
						}},
						{Cells: []Cell{
							{Label: "Beginn der Ausbildung:", Weight: 1},
							{Label: "Voraussichtliches Ende der Ausbildung:", Weight: 1},
							{Label: "Im Baugewerbe beschäftigt seit", Weight: 1.3},
						}},
						{Cells: []Cell{
							{Label: "Wöchentliche Arbeitszeit:", Weight: 1, Options: []Option{{Label: "Vollzeit"}, {Label: "Teilz."}}},
							{Label: "Ggf.Verteilung d. wöchentl. Arbeitszeit (Std.)", Sub: "Mo      Di      Mi      Do      Fr      Sa", Weight: 1.3},
						}},
						{Cells: []Cell{
							{Label: "Urlaubsanspruch", Sub: "(Kalenderjahr)", Weight: 1, Shaded: true},
							{Label: "Kostenstelle", Weight: 1, Shaded: true},
							{Label: "Abt.-Nummer", Weight: 1, Shaded: true},
							{Label: "Personengruppe", Weight: 1, Shaded: true},
						}},
					}},
					Section{Title: "Befristung", Rows: []Row{
						{Cells: []Cell{
							{Label: "Das Arbeitsverhältnis ist", Weight: 1.3, Options: []Option{{Label: "befristet"}, {Label: "zweckbefristet"}}},
							{Label: "Befristung Arbeitsvertrag zum:", Weight: 1},
						}},
						{Cells: []Cell{
							{Label: "Schriftlicher Abschluss des befristeten Arbeitsvertrages", Weight: 1.3, Options: yesNo()},
							{Label: "Abschluss Arbeitsvertrag am:", Weight: 1},
						}},
						{Cells: []Cell{
							{Weight: 1, Options: options("befristete Beschäftigung ist für mindestens 2 Monate vorgesehen, mit Aussicht auf Weiterbeschäftigung")},
						}},
					}},
					Section{Title: "Weitere Angaben", Rows: []Row{
						{Height: 14, Cells: []Cell{{Weight: 1}}},
					}},
				},
			},
			{
				Number: "2",
				AsOf:   asOf,
				Blocks: []Block{
					header(),
					NameBar{Label: "Name des Mitarbeiters", Value: name, NumberLabel: "Personalnummer", Number: e.PersonalNumber},
					Section{Title: "Steuer", Rows: []Row{
						{Cells: []Cell{
							{Label: "Identifikationsnr.", Weight: 1.3},
							{Label: "Finanzamt-Nr.", Weight: 0.8, Shaded: true},
							{Label: "Steuerklasse/Faktor", Weight: 1},
							{Label: "Kinderfreibeträge", Weight: 1},
							{Label: "Konfession", Weight: 0.8},
						}},
					}},
					Section{Title: "Sozialversicherung", Rows: []Row{
						{Cells: []Cell{
							{Label: "Gesetzl. Krankenkasse (bei PKV: letzte ges. Krankenkasse)", Weight: 2},
							{Label: "Elterneigenschaft", Weight: 1, Options: yesNo()},
						}},
						{Cells: []Cell{
							{Label: "KV", Weight: 1, Shaded: true},
							{Label: "RV", Weight: 1, Shaded: true},
							{Label: "AV", Weight: 1, Shaded: true},
							{Label: "PV", Weight: 1, Shaded: true},
							{Label: "UV - Gefahrtarif", Weight: 1.5, Shaded: true},
						}},
					}},
					Section{Title: "Entlohnung", Rows: []Row{
						{Height: 11, Cells: []Cell{
							{Label: "Bezeichnung", Weight: 1.5},
							{Label: "Betrag", Weight: 1},
							{Label: "Gültig ab", Weight: 1},
							{Label: "Stundenlohn", Weight: 1},
							{Label: "Gültig ab", Weight: 1},
						}},
					}},
					Section{Title: "VWL", Note: "- nur notwendig wenn Vertrag vorliegt", Rows: []Row{
						{Cells: []Cell{
							{Label: "Empfänger VWL", Weight: 2},
							{Label: "Betrag", Weight: 1},
							{Label: "AG-Anteil (Höhe mtl.)", Weight: 1, Shaded: true},
						}},
						{Cells: []Cell{
							{Weight: 2},
							{Label: "Seit wann", Weight: 1},
							{Label: "Vertragsnr.", Weight: 1},
						}},
						{Cells: []Cell{
							{Label: "Kontonummer", Sub: "(IBAN)", Weight: 2},
							{Label: "Bankleitzahl/Bankbezeichnung", Sub: "(BIC)", Weight: 2},
						}},
					}},
					Section{Title: "Angaben zu den Arbeitspapieren", Rows: workPapers(
						"Arbeitsvertrag",
						"Bescheinigung über LSt.-Abzug",
						"SV-Ausweis",
						"Mitgliedsbescheinigung Krankenkasse",
						"Bescheinigung zur privaten Krankenversicherung",
						"VWL Vertrag",
						"Nachweis Elterneigenschaft",
						"Vertrag Betriebliche Altersversorgung",
						"Schwerbehindertenausweis",
						"Unterlagen Sozialkasse Bau/Maler",
					)},
					Section{Title: "Angaben zu steuerpflichtigen Vorbeschäftigungszeiten im laufenden Kalenderjahr", Rows: []Row{
						{Height: 6, Cells: []Cell{
							{Label: "Zeitraum von", Weight: 0.7},
							{Label: "Zeitraum bis", Weight: 0.7},
							{Label: "Art der Beschäftigung", Weight: 1.3},
							{Label: "Anzahl der Beschäftigungstage", Weight: 1.3},
						}},
						{Height: 9, Cells: []Cell{{Weight: 0.7}, {Weight: 0.7}, {Weight: 1.3}, {Weight: 1.3}}},
					}},
					Declaration{
						Title: "Erklärung des Arbeitnehmers:",
						Text: "Ich versichere, dass die vorstehenden Angaben der Wahrheit entsprechen. " +
							"Ich verpflichte mich, meinem Arbeitgeber alle Änderungen, insbesondere in Bezug auf " +
							"weitere Beschäftigungen (in Bezug auf Art, Dauer und Entgelt) unverzüglich mitzuteilen.",
					},
					Signatures{Labels: []string{"Datum", "Unterschrift Arbeitnehmer", "Datum", "Unterschrift Arbeitgeber"}},
				},
			},
		},
	}
}

// Filename is the download name for e's questionnaire: "surname_name.pdf",
// with an empty part for a missing field.
func Filename(e domain.Employee) string {
	return e.Surname + "_" + e.Name + ".pdf"
}

func header() Header {
	return Header{
		Title:    "Personalfragebogen",
		Subtitle: "(grau hinterlegte Felder sind vom Arbeitgeber auszufüllen)",
		Company:  "Firma:",
		Brand:    "DATEV",
	}
}

func yesNo() []Option {
	return options("ja", "nein")
}

func options(labels ...string) []Option {
	out := make([]Option, len(labels))
	for i, l := range labels {
		out[i] = Option{Label: l}
	}
	return out
}

func workPapers(labels ...string) []Row {
	rows := make([]Row, len(labels))
	for i, l := range labels {
		rows[i] = Row{Height: 5.2, Cells: []Cell{
			{Label: l, Weight: 2, Inline: true},
			{Weight: 1, Options: options("liegt vor")},
		}}
	}
	return rows
}

// sexOptions reports which Geschlecht box to tick. The field is OCR text, so
// several spellings are accepted; anything else leaves both boxes empty.
func sexOptions(sex string) (male, female bool) {
	switch strings.ToLower(strings.TrimSpace(sex)) {
	case "m", "male", "männlich", "maennlich", "h", "homme", "masculin":
		return true, false
	case "f", "w", "female", "weiblich", "femme", "féminin", "feminin":
		return false, true
	}
	return false, false
}
