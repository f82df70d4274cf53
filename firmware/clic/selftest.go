// This file is part of LiteX-Go.
//
// LiteX-Go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// LiteX-Go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with LiteX-Go.  If not, see <https://www.gnu.org/licenses/>.

package clic

import (
	"fmt"
	"io"

	"github.com/disdi/litex/logger"
)

// pollBudget is the bounded cycle budget for waiting on a delivery. budget
// exhaustion is a reported timeout, never fatal.
const pollBudget = 10000

// Stepper advances the hardware by one delivery cycle. The simulated SoC
// implements it; delivery of a pended interrupt happens inside Step().
type Stepper interface {
	Step()
}

// Result of one self-test phase.
type Result struct {
	Name   string
	Pass   bool
	Detail []string
}

// Report is the set of results from a self-test run.
type Report []Result

// Passed returns true if every phase passed.
func (r Report) Passed() bool {
	for _, res := range r {
		if !res.Pass {
			return false
		}
	}
	return true
}

// Write a human readable rendering of the report.
func (r Report) Write(w io.Writer) {
	for _, res := range r {
		mark := "✓"
		if !res.Pass {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, res.Name)
		for _, d := range res.Detail {
			fmt.Fprintf(w, "    %s\n", d)
		}
	}
}

// SelfTest exercises the interrupt controller through the driver and
// observes deliveries through its Handler function. The per-interrupt
// counters and delivery bookkeeping live on the fixture, not in package
// state, and are reset at the start of every phase.
//
// The caller wires Handler to whatever plays the CPU trap entry (the
// simulated SoC's interrupt handler registration) and enables global
// interrupt delivery before calling Run(). Neither mechanism belongs to the
// controller and neither is modelled here.
type SelfTest struct {
	drv  *CLIC
	step Stepper

	counts       [NumInterrupts]int
	order        []int
	lastID       int
	lastPriority uint8
}

// NewSelfTest is the preferred method of initialisation for SelfTest.
func NewSelfTest(drv *CLIC, step Stepper) *SelfTest {
	return &SelfTest{drv: drv, step: step}
}

// Handler is the delivery observation point. Register it as the interrupt
// handler before calling Run(). It acknowledges the interrupt by clearing
// the pending bit, as a software-triggered test requires.
func (st *SelfTest) Handler(id int, priority uint8) {
	st.counts[id]++
	st.order = append(st.order, id)
	st.lastID = id
	st.lastPriority = priority
	st.drv.ClearPending(id)
	logger.Logf("selftest", "interrupt %d handled (priority=%d, count=%d)", id, priority, st.counts[id])
}

// Run the full self-test. Failures are reported in the returned Report and
// never abort the remaining phases.
func (st *SelfTest) Run() Report {
	st.initController()

	return Report{
		st.testBasic(),
		st.testPreemption(),
		st.testThreshold(),
		st.testTriggerModes(),
		st.testLatency(),
		st.testMultiple(),
	}
}

// initController puts every line in a known state: disabled, not pending,
// threshold zero (mask nothing).
func (st *SelfTest) initController() {
	for irq := 0; irq < NumInterrupts; irq++ {
		st.drv.Disable(irq)
		st.drv.ClearPending(irq)
	}
	st.drv.SetThreshold(0, 0)
	st.reset()
	logger.Log("selftest", "controller initialised")
}

// reset the delivery bookkeeping. called at the start of every phase.
func (st *SelfTest) reset() {
	st.counts = [NumInterrupts]int{}
	st.order = st.order[:0]
	st.lastID = 0
	st.lastPriority = 0
}

// waitDelivery steps the hardware until the interrupt's counter increments
// or the poll budget is exhausted.
func (st *SelfTest) waitDelivery(irq int) (cycles int, ok bool) {
	for cycles = 1; cycles <= pollBudget; cycles++ {
		st.step.Step()
		if st.counts[irq] > 0 {
			return cycles, true
		}
	}
	return pollBudget, false
}

// settle steps the hardware a fixed number of times to let any outstanding
// deliveries drain.
func (st *SelfTest) settle(cycles int) {
	for i := 0; i < cycles; i++ {
		st.step.Step()
	}
}

// testBasic configures, enables and software-triggers a handful of lines one
// at a time.
func (st *SelfTest) testBasic() Result {
	res := Result{Name: "basic interrupt delivery", Pass: true}

	for _, irq := range []int{1, 3, 5, 7, 9} {
		st.reset()

		st.drv.Configure(irq, 128, true, true)
		st.drv.Enable(irq)
		st.drv.ClearPending(irq)

		st.drv.SetPending(irq)

		if _, ok := st.waitDelivery(irq); !ok {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d was not handled (timeout)", irq))
		} else if st.counts[irq] != 1 {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d handled %d times, expected once", irq, st.counts[irq]))
		}

		st.drv.Disable(irq)
	}

	return res
}

// testPreemption pends a low and a high priority line together and checks
// the high priority line (the numerically lower value) is delivered first.
func (st *SelfTest) testPreemption() Result {
	const lowPrioIRQ = 2  // priority 200
	const highPrioIRQ = 4 // priority 50

	res := Result{Name: "priority ordering", Pass: true}
	st.reset()

	st.drv.Configure(lowPrioIRQ, 200, true, true)
	st.drv.Enable(lowPrioIRQ)
	st.drv.Configure(highPrioIRQ, 50, true, true)
	st.drv.Enable(highPrioIRQ)

	st.drv.SetPending(lowPrioIRQ)
	st.drv.SetPending(highPrioIRQ)

	st.waitDelivery(lowPrioIRQ)
	st.settle(16)

	if st.counts[lowPrioIRQ] != 1 || st.counts[highPrioIRQ] != 1 {
		res.Pass = false
		res.Detail = append(res.Detail, fmt.Sprintf("counts: IRQ %d=%d, IRQ %d=%d, expected one each",
			lowPrioIRQ, st.counts[lowPrioIRQ], highPrioIRQ, st.counts[highPrioIRQ]))
	}
	if len(st.order) >= 1 && st.order[0] != highPrioIRQ {
		res.Pass = false
		res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d delivered first, expected IRQ %d", st.order[0], highPrioIRQ))
	}
	if st.lastID != lowPrioIRQ {
		res.Pass = false
		res.Detail = append(res.Detail, fmt.Sprintf("last handled was IRQ %d, expected IRQ %d", st.lastID, lowPrioIRQ))
	}

	st.drv.Disable(lowPrioIRQ)
	st.drv.Disable(highPrioIRQ)

	return res
}

// testThreshold checks that a non-zero threshold masks every line with a
// priority value at or above it, and that resetting the threshold to zero
// releases the blocked lines.
func (st *SelfTest) testThreshold() Result {
	irqs := []int{10, 11, 12}
	priorities := []uint8{50, 128, 200}

	res := Result{Name: "threshold masking", Pass: true}
	st.reset()

	for i, irq := range irqs {
		st.drv.Configure(irq, priorities[i], true, true)
		st.drv.Enable(irq)
	}

	// priority values >= 100 must be blocked
	st.drv.SetThreshold(0, 100)

	for _, irq := range irqs {
		st.drv.SetPending(irq)
	}
	st.settle(16)

	for i, irq := range irqs {
		blocked := priorities[i] >= 100
		if blocked && st.counts[irq] != 0 {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d (priority=%d): count=%d, expected blocked",
				irq, priorities[i], st.counts[irq]))
		}
		if !blocked && st.counts[irq] != 1 {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d (priority=%d): count=%d, expected delivered",
				irq, priorities[i], st.counts[irq]))
		}
	}

	// a zero threshold masks nothing: the blocked lines are still pending
	// and must now be delivered
	st.drv.SetThreshold(0, 0)
	st.settle(16)

	for i, irq := range irqs {
		if st.counts[irq] != 1 {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d (priority=%d): count=%d after threshold reset, expected 1",
				irq, priorities[i], st.counts[irq]))
		}
		st.drv.ClearPending(irq)
		st.drv.Disable(irq)
	}

	return res
}

// testTriggerModes software-triggers an edge configured line and a level
// configured line. Both must be delivered exactly once; the handler clears
// the pending bit either way.
func (st *SelfTest) testTriggerModes() Result {
	const edgeIRQ = 15
	const levelIRQ = 16

	res := Result{Name: "edge and level trigger modes", Pass: true}
	st.reset()

	st.drv.Configure(edgeIRQ, 128, true, true)
	st.drv.Enable(edgeIRQ)
	st.drv.Configure(levelIRQ, 128, false, true)
	st.drv.Enable(levelIRQ)

	st.drv.SetPending(edgeIRQ)
	if _, ok := st.waitDelivery(edgeIRQ); !ok || st.counts[edgeIRQ] != 1 {
		res.Pass = false
		res.Detail = append(res.Detail, fmt.Sprintf("edge IRQ %d: count=%d, expected 1", edgeIRQ, st.counts[edgeIRQ]))
	}

	st.drv.SetPending(levelIRQ)
	if _, ok := st.waitDelivery(levelIRQ); !ok || st.counts[levelIRQ] != 1 {
		res.Pass = false
		res.Detail = append(res.Detail, fmt.Sprintf("level IRQ %d: count=%d, expected 1", levelIRQ, st.counts[levelIRQ]))
	}

	st.drv.Disable(edgeIRQ)
	st.drv.Disable(levelIRQ)

	return res
}

// testLatency measures cycles from trigger to delivery over several
// iterations. An exhausted budget is a timeout to report, not a failure of
// the whole run.
func (st *SelfTest) testLatency() Result {
	const irq = 20
	const iterations = 10

	res := Result{Name: "delivery latency", Pass: true}

	st.drv.Configure(irq, 64, true, true)
	st.drv.Enable(irq)

	total := 0
	delivered := 0

	for i := 0; i < iterations; i++ {
		st.reset()
		st.drv.SetPending(irq)

		cycles, ok := st.waitDelivery(irq)
		if ok {
			total += cycles
			delivered++
		} else {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("iteration %d: timeout after %d cycles", i+1, pollBudget))
		}
	}

	if delivered > 0 {
		res.Detail = append(res.Detail, fmt.Sprintf("average latency over %d deliveries: %d cycles", delivered, total/delivered))
	}

	st.drv.Disable(irq)

	return res
}

// testMultiple pends five lines at once and checks the delivery order equals
// the priority order.
func (st *SelfTest) testMultiple() Result {
	const baseIRQ = 25
	const numIRQs = 5

	res := Result{Name: "simultaneous delivery order", Pass: true}
	st.reset()

	for i := 0; i < numIRQs; i++ {
		// priorities 50, 80, 110, 140, 170: ascending with line number, so
		// the expected delivery order is simply line order
		st.drv.Configure(baseIRQ+i, uint8(50+i*30), true, true)
		st.drv.Enable(baseIRQ + i)
	}

	for i := 0; i < numIRQs; i++ {
		st.drv.SetPending(baseIRQ + i)
	}
	st.settle(16)

	for i := 0; i < numIRQs; i++ {
		if st.counts[baseIRQ+i] != 1 {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("IRQ %d: count=%d, expected 1", baseIRQ+i, st.counts[baseIRQ+i]))
		}
	}

	for i, irq := range st.order {
		if irq != baseIRQ+i {
			res.Pass = false
			res.Detail = append(res.Detail, fmt.Sprintf("delivery %d was IRQ %d, expected IRQ %d", i+1, irq, baseIRQ+i))
			break
		}
	}

	for i := 0; i < numIRQs; i++ {
		st.drv.Disable(baseIRQ + i)
	}

	return res
}
