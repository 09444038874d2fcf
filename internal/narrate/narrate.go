// Package narrate turns the rsafermat event stream into console output.
package narrate

import (
	"fmt"
	"io"
	"strings"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/mahdiidarabi/rsa-fermat/pkg/rsafermat"
)

var (
	colorBold    = color.New(color.Bold).SprintFunc()
	colorSection = color.New(color.FgHiBlue, color.Bold).SprintFunc()
	colorSecret  = color.New(color.FgHiRed).SprintFunc()
	colorPublic  = color.New(color.FgHiGreen).SprintFunc()
)

const ruleWidth = 28

// Printer writes a human-readable account of each stage to w. Status lines
// (attack progress, verification, warnings) go through apex/log.
type Printer struct {
	w io.Writer
}

// New returns a Printer writing to w.
func New(w io.Writer) *Printer {
	return &Printer{w: w}
}

func (p *Printer) rule() {
	fmt.Fprintf(p.w, "%s\n\n", strings.Repeat("-", ruleWidth))
}

func (p *Printer) section(title string) {
	fmt.Fprintf(p.w, "\n%s\n\n", colorSection(fmt.Sprintf("##### %s #####", title)))
}

func (p *Printer) value(ev rsafermat.Event, paint func(a ...interface{}) string) {
	fmt.Fprintf(p.w, "%s:\n\n", colorBold(ev.Label))
	fmt.Fprintln(p.w, paint(ev.Value.String()))
	fmt.Fprintf(p.w, "\nNumber of bits: %d\n", ev.BitLen)
	p.rule()
}

// Observe implements rsafermat.Observer.
func (p *Printer) Observe(ev rsafermat.Event) {
	switch ev.Stage {
	case rsafermat.StageSeed:
		p.section("KEY GENERATION")
		p.value(ev, fmt.Sprint)
	case rsafermat.StagePrimeP, rsafermat.StagePrimeQ, rsafermat.StageTotient, rsafermat.StagePrivateExponent:
		p.value(ev, colorSecret)
	case rsafermat.StageModulus, rsafermat.StagePublicExponent:
		p.value(ev, colorPublic)
	case rsafermat.StageErase:
		fmt.Fprintf(p.w, "%s\n", colorBold("------ "+strings.ToUpper(ev.Label)+" ------"))
	case rsafermat.StagePlaintext:
		p.section("ENCRYPTION")
		fmt.Fprintf(p.w, "%s: %s\n\n", colorBold(ev.Label), ev.Text)
	case rsafermat.StageCiphertext:
		p.value(ev, colorPublic)
	case rsafermat.StageAttack:
		p.attack(ev)
	case rsafermat.StageFermatA, rsafermat.StageFermatB, rsafermat.StageRecoveredP, rsafermat.StageRecoveredQ:
		p.value(ev, fmt.Sprint)
	case rsafermat.StageRecoveredTotient, rsafermat.StageRecoveredPrivateExponent:
		p.value(ev, colorSecret)
	case rsafermat.StageDecryption:
		p.section("DECRYPTION")
		p.value(ev, fmt.Sprint)
	case rsafermat.StageDecoded:
		fmt.Fprintf(p.w, "%s: %s\n", colorBold(ev.Label), ev.Text)
		if ev.Corrupted {
			log.Warn("Decrypted bytes were not valid UTF-8, invalid sequences were replaced")
		}
	default:
		log.Debugf("unhandled event %s", ev.Stage)
	}
}

func (p *Printer) attack(ev rsafermat.Event) {
	switch ev.State {
	case rsafermat.StateSearching:
		p.section("HACKING TIME >> Fermat's factorization")
		log.Info("Searching for a with a² - n a perfect square")
	case rsafermat.StateSquareFound:
		log.Infof("Successfully hacked in just %s iterations", humanize.Comma(int64(ev.Iterations)))
	case rsafermat.StateVerifying:
		log.Info("Verifying that p and q are prime and that p*q == n")
	case rsafermat.StateVerified:
		log.Info("Verified, we got p and q")
	case rsafermat.StateVerificationFailed:
		log.Error("Candidate factors failed verification")
	case rsafermat.StateExhausted:
		log.Error("Fermat search exhausted without finding a perfect square")
	}
}
