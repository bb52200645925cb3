// Package prompt builds the generation prompts for match analyses. Prompts
// are produced in Polish or English, for pre-match or in-play fixtures, from
// the season statistics the client submits with the request.
//
// The output contract at the end of every prompt (a "double chance"
// prediction line in a fixed format) is load-bearing: the frontend pattern
// matches on it, so the closing instruction must stay stable.
package prompt

import (
	"fmt"
	"strings"
)

// TeamStats is one team's season statistics as submitted by the client.
// Field tags mirror the upstream statistics payload so the handler can bind
// the request body directly.
type TeamStats struct {
	PlayedTotal int    `json:"playedTotal"`
	WinsTotal   int    `json:"winstotal"`
	WinsHome    int    `json:"winshome"`
	WinsAway    int    `json:"winsaway"`
	DrawsTotal  int    `json:"drawstotal"`
	DrawsHome   int    `json:"drawshome"`
	DrawsAway   int    `json:"drawsaway"`
	LosesTotal  int    `json:"losestotal"`
	LosesHome   int    `json:"loseshome"`
	LosesAway   int    `json:"losesaway"`
	Form        string `json:"form"`

	GoalsOver05  int `json:"goalsOver05"`
	GoalsUnder05 int `json:"goalsUnder05"`
	GoalsOver15  int `json:"goalsOver15"`
	GoalsUnder15 int `json:"goalsUnder15"`
	GoalsOver25  int `json:"goalsOver25"`
	GoalsUnder25 int `json:"goalsUnder25"`
	GoalsOver35  int `json:"goalsOver35"`
	GoalsUnder35 int `json:"goalsUnder35"`

	GoalsForTotal int `json:"goalsfortotal"`
	GoalsForHome  int `json:"goalsforhome"`
	GoalsForAway  int `json:"goalsforaway"`

	GoalsOver05Against  int `json:"goalsOver05aga"`
	GoalsUnder05Against int `json:"goalsUnder05aga"`
	GoalsOver15Against  int `json:"goalsOver15aga"`
	GoalsUnder15Against int `json:"goalsUnder15aga"`
	GoalsOver25Against  int `json:"goalsOver25aga"`
	GoalsUnder25Against int `json:"goalsUnder25aga"`
	GoalsOver35Against  int `json:"goalsOver35aga"`
	GoalsUnder35Against int `json:"goalsUnder35aga"`

	GoalsAgainstTotal int `json:"goalsagatotal"`
	GoalsAgainstHome  int `json:"goalsagahome"`
	GoalsAgainstAway  int `json:"goalsagaaway"`

	CleanSheetTotal int `json:"cleansheettotal"`
	CleanSheetHome  int `json:"cleansheethome"`
	CleanSheetAway  int `json:"cleansheetaway"`

	FailedToScoreTotal int `json:"failedtoscoretotal"`
	FailedToScoreHome  int `json:"failedtoscorehome"`
	FailedToScoreAway  int `json:"failedtoscoreaway"`
}

// Score is the current result of an in-play fixture.
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Input carries everything needed to build one prompt.
type Input struct {
	HomeTeam     string
	AwayTeam     string
	Prediction   string // bookmaker's probable result; pre-match only
	IsLive       bool
	CurrentGoals *Score // required when IsLive
	Home         TeamStats
	Away         TeamStats
}

// Build renders the prompt for the given language ("pl" or "en"; anything
// else falls back to Polish, the application default).
func Build(in Input, lang string) string {
	if lang != "en" {
		lang = "pl"
	}

	var b strings.Builder
	writeIntro(&b, in, lang)
	b.WriteString("\n\n")
	writeTeamStats(&b, teamLabel(lang, true), in.HomeTeam, in.Home, lang)
	b.WriteString("\n")
	writeTeamStats(&b, teamLabel(lang, false), in.AwayTeam, in.Away, lang)
	b.WriteString("\n")
	writeOutro(&b, in, lang)
	return b.String()
}

func writeIntro(b *strings.Builder, in Input, lang string) {
	switch {
	case lang == "en" && in.IsLive:
		fmt.Fprintf(b,
			"Provide a concise but specific textual analysis of the football match currently being played between %s and %s. "+
				"The current score is %s %d - %d %s. Always open the analysis by stating the current score.",
			in.HomeTeam, in.AwayTeam, in.HomeTeam, in.CurrentGoals.Home, in.CurrentGoals.Away, in.AwayTeam)
	case lang == "en":
		fmt.Fprintf(b,
			"Provide a concise but specific textual analysis of the upcoming football match between %s and %s. Probable result: %s.",
			in.HomeTeam, in.AwayTeam, in.Prediction)
	case in.IsLive:
		fmt.Fprintf(b,
			"Proszę o krótką ale konkretną analizę tekstową meczu piłki nożnej, który aktualnie trwa między %s a %s. "+
				"Aktualny wynik meczu to %s %d - %d %s. Zawsze zaczynaj analizę od podania aktualnego wyniku.",
			in.HomeTeam, in.AwayTeam, in.HomeTeam, in.CurrentGoals.Home, in.CurrentGoals.Away, in.AwayTeam)
	default:
		fmt.Fprintf(b,
			"Proszę o krótką ale konkretną analizę tekstową nadchodzącego meczu piłki nożnej między %s a %s. Prawdopodobny wynik: %s.",
			in.HomeTeam, in.AwayTeam, in.Prediction)
	}
}

func writeOutro(b *strings.Builder, in Input, lang string) {
	if lang == "en" {
		b.WriteString("Provide a detailed analysis based on the data above. Write only the analysis and conclusion, " +
			"with no introductory phrases such as \"based on the provided data\".\n")
		if in.IsLive || in.Prediction == "" {
			b.WriteString("At the end always include your prediction for this match, covering only a draw or a win " +
				"for one of the teams (double chance). Always use this format, e.g.: Prediction: Roma to win or draw.")
		} else {
			fmt.Fprintf(b, "At the end always include your prediction for this match given the probable result: %s, "+
				"covering only a draw or a win for one of the teams (double chance). "+
				"Always use this format, e.g.: Prediction: Roma to win or draw.", in.Prediction)
		}
		return
	}
	b.WriteString("Proszę o szczegółową analizę na podstawie powyższych danych. Pisz tylko analizę i wniosek, " +
		"bez wstępów typu \"na podstawie przekazanych statystyk\".\n")
	if in.IsLive || in.Prediction == "" {
		b.WriteString("Na końcu zawsze podaj swoje przewidywanie na ten mecz, obejmujące tylko remis lub wygraną " +
			"którejś ze stron (podwójna szansa). Zawsze w formacie np.: Przewidywanie: Roma wygra lub remis.")
	} else {
		fmt.Fprintf(b, "Na końcu zawsze podaj swoje przewidywanie na ten mecz, biorąc pod uwagę prawdopodobny wynik: %s, "+
			"obejmujące tylko remis lub wygraną którejś ze stron (podwójna szansa). "+
			"Zawsze w formacie np.: Przewidywanie: Roma wygra lub remis.", in.Prediction)
	}
}

func teamLabel(lang string, home bool) string {
	switch {
	case lang == "en" && home:
		return "Statistics for the home team"
	case lang == "en":
		return "Statistics for the away team"
	case home:
		return "Statystyki gospodarzy"
	default:
		return "Statystyki gości"
	}
}

// statRow is one labelled statistics line; labels carry both languages so
// the table is written once.
type statRow struct {
	en, pl string
	value  string
}

func writeTeamStats(b *strings.Builder, label, team string, ts TeamStats, lang string) {
	fmt.Fprintf(b, "%s %s:\n", label, team)
	for _, row := range statRows(ts) {
		name := row.pl
		if lang == "en" {
			name = row.en
		}
		fmt.Fprintf(b, "- %s: %s\n", name, row.value)
	}
}

func statRows(ts TeamStats) []statRow {
	n := func(v int) string { return fmt.Sprintf("%d", v) }
	return []statRow{
		{"Total matches played", "Liczba rozegranych meczów", n(ts.PlayedTotal)},
		{"Total matches won", "Łączna liczba wygranych meczów", n(ts.WinsTotal)},
		{"Home matches won", "Wygrane mecze u siebie", n(ts.WinsHome)},
		{"Away matches won", "Wygrane mecze na wyjeździe", n(ts.WinsAway)},
		{"Total matches drawn", "Łączna liczba zremisowanych meczów", n(ts.DrawsTotal)},
		{"Home matches drawn", "Zremisowane mecze u siebie", n(ts.DrawsHome)},
		{"Away matches drawn", "Zremisowane mecze na wyjeździe", n(ts.DrawsAway)},
		{"Total matches lost", "Łączna liczba przegranych meczów", n(ts.LosesTotal)},
		{"Home matches lost", "Przegrane mecze u siebie", n(ts.LosesHome)},
		{"Away matches lost", "Przegrane mecze na wyjeździe", n(ts.LosesAway)},
		{"Form", "Forma", ts.Form},
		{"Matches with over 0.5 goals scored", "Mecze ze zdobytymi golami ponad 0.5", n(ts.GoalsOver05)},
		{"Matches with under 0.5 goals scored", "Mecze ze zdobytymi golami poniżej 0.5", n(ts.GoalsUnder05)},
		{"Matches with over 1.5 goals scored", "Mecze ze zdobytymi golami ponad 1.5", n(ts.GoalsOver15)},
		{"Matches with under 1.5 goals scored", "Mecze ze zdobytymi golami poniżej 1.5", n(ts.GoalsUnder15)},
		{"Matches with over 2.5 goals scored", "Mecze ze zdobytymi golami ponad 2.5", n(ts.GoalsOver25)},
		{"Matches with under 2.5 goals scored", "Mecze ze zdobytymi golami poniżej 2.5", n(ts.GoalsUnder25)},
		{"Matches with over 3.5 goals scored", "Mecze ze zdobytymi golami ponad 3.5", n(ts.GoalsOver35)},
		{"Matches with under 3.5 goals scored", "Mecze ze zdobytymi golami poniżej 3.5", n(ts.GoalsUnder35)},
		{"Total goals scored", "Łączna liczba zdobytych goli", n(ts.GoalsForTotal)},
		{"Home goals scored", "Gole zdobyte u siebie", n(ts.GoalsForHome)},
		{"Away goals scored", "Gole zdobyte na wyjeździe", n(ts.GoalsForAway)},
		{"Matches with over 0.5 goals conceded", "Mecze ze straconymi golami ponad 0.5", n(ts.GoalsOver05Against)},
		{"Matches with under 0.5 goals conceded", "Mecze ze straconymi golami poniżej 0.5", n(ts.GoalsUnder05Against)},
		{"Matches with over 1.5 goals conceded", "Mecze ze straconymi golami ponad 1.5", n(ts.GoalsOver15Against)},
		{"Matches with under 1.5 goals conceded", "Mecze ze straconymi golami poniżej 1.5", n(ts.GoalsUnder15Against)},
		{"Matches with over 2.5 goals conceded", "Mecze ze straconymi golami ponad 2.5", n(ts.GoalsOver25Against)},
		{"Matches with under 2.5 goals conceded", "Mecze ze straconymi golami poniżej 2.5", n(ts.GoalsUnder25Against)},
		{"Matches with over 3.5 goals conceded", "Mecze ze straconymi golami ponad 3.5", n(ts.GoalsOver35Against)},
		{"Matches with under 3.5 goals conceded", "Mecze ze straconymi golami poniżej 3.5", n(ts.GoalsUnder35Against)},
		{"Total goals conceded", "Łączna liczba straconych goli", n(ts.GoalsAgainstTotal)},
		{"Home goals conceded", "Gole stracone u siebie", n(ts.GoalsAgainstHome)},
		{"Away goals conceded", "Gole stracone na wyjeździe", n(ts.GoalsAgainstAway)},
		{"Total clean sheets", "Łączna liczba meczów z czystym kontem", n(ts.CleanSheetTotal)},
		{"Home clean sheets", "Czyste konta u siebie", n(ts.CleanSheetHome)},
		{"Away clean sheets", "Czyste konta na wyjeździe", n(ts.CleanSheetAway)},
		{"Matches without scoring", "Mecze bez zdobytej bramki", n(ts.FailedToScoreTotal)},
		{"Home matches without scoring", "Mecze bez zdobytej bramki u siebie", n(ts.FailedToScoreHome)},
		{"Away matches without scoring", "Mecze bez zdobytej bramki na wyjeździe", n(ts.FailedToScoreAway)},
	}
}
