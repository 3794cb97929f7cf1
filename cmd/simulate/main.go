package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"

	"HoldemCore/internal/game/manager"
	"HoldemCore/internal/game/table"
	"HoldemCore/internal/store"
	"HoldemCore/internal/utils"
)

// 终端里自动打几手牌：每条街固定下注，河牌后摊牌
func main() {
	namesFlag := flag.String("players", "Alice,Bob,Carol", "comma separated player names")
	chipsFlag := flag.Int64("chips", 1000, "starting chips")
	betFlag := flag.Int64("bet", 20, "bet per street")
	handsFlag := flag.Int("hands", 3, "number of hands to play")
	seedFlag := flag.Int64("seed", 0, "shuffle seed, 0 = random")
	flag.Parse()

	utils.Init("warn")

	title, err := pterm.DefaultBigText.WithLetters(
		putils.LettersFromStringWithStyle("Hold", pterm.FgRed.ToStyle()),
		putils.LettersFromStringWithStyle("em", pterm.FgDarkGray.ToStyle()),
	).Srender()
	if err == nil {
		pterm.Print(title)
	}

	mgr := manager.NewGameManager(store.NewMemoryRepo(), nil, manager.Options{
		StartingChips: *chipsFlag,
		BetAmount:     *betFlag,
		Seed:          *seedFlag,
	})
	ctx := context.Background()

	snap, err := mgr.CreateGame(ctx, strings.Split(*namesFlag, ","))
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	for hand := 1; hand <= *handsFlag; hand++ {
		pterm.DefaultSection.Printfln("Hand %d", hand)
		if snap, err = playHand(ctx, mgr, snap.ID); err != nil {
			pterm.Warning.Println(err)
			break
		}
	}
	pterm.Success.Println("done")
}

func playHand(ctx context.Context, mgr *manager.GameManager, gameID string) (table.Snapshot, error) {
	snap, err := mgr.StartRound(ctx, gameID)
	if err != nil {
		return snap, err
	}
	for snap.Phase != table.PhaseShowdown {
		if snap, err = mgr.BettingRound(ctx, gameID, 0); err != nil {
			return snap, err
		}
		if snap.Phase == table.PhaseShowdown {
			break
		}
		render(snap)
		if snap, err = mgr.NextRound(ctx, gameID); err != nil {
			return snap, err
		}
	}
	render(snap)
	return snap, nil
}

func render(s table.Snapshot) {
	var seats []pterm.Panel
	for _, p := range s.Players {
		seats = append(seats, pterm.Panel{Data: playerBox(p, s)})
	}
	board := pterm.DefaultBox.WithTitle(pterm.LightYellow("|" + strings.ToUpper(string(s.Phase)) + "|")).
		WithTitleTopCenter().
		WithHorizontalPadding(4).
		Sprintf("%s\nPot: %d  Current bet: %d", boardLine(s.Community), s.Pot, s.CurrentBet)

	_ = pterm.DefaultPanel.WithPanels([][]pterm.Panel{seats, {{Data: board}}}).Render()

	if len(s.Winners) > 0 {
		var names []string
		for _, p := range s.Players {
			for _, w := range s.Winners {
				if p.ID == w {
					names = append(names, pterm.LightCyan(p.Name))
				}
			}
		}
		pterm.Success.Printfln("Winner: %s", strings.Join(names, ", "))
	}
}

func playerBox(p table.PlayerView, s table.Snapshot) string {
	status := pterm.LightGreen("Active")
	if !p.Active {
		status = pterm.LightRed("Folded")
	}
	body := fmt.Sprintf("%s\nChips: %d\nStreet bet: %d\nPot odds: %s\n%s",
		status, p.Chips, p.StreetBet, p.PotOdds, pterm.BgGreen.Sprint(strings.Join(p.Hand, " ")))
	if p.BestHand != "" && p.Active {
		body += "\n" + p.BestHand
	}
	return pterm.DefaultBox.WithTitle(p.Name).WithTitleTopLeft().WithHorizontalPadding(2).Sprint(body)
}

func boardLine(cards []string) string {
	if len(cards) == 0 {
		return pterm.Gray("(no board)")
	}
	return pterm.BgGreen.Sprint(" " + strings.Join(cards, " ") + " ")
}
