package wdf

// Resistor is a matched (reflection-free) resistive load.
type Resistor struct {
	waves
	r float64
}

// NewResistor returns a resistor of r ohms. r must be positive and finite.
func NewResistor(r float64) *Resistor {
	return &Resistor{r: r}
}

// SetResistance changes the resistance. Parent adaptors must be refreshed.
func (e *Resistor) SetResistance(r float64) { e.r = r }

func (e *Resistor) PortResistance() float64 { return e.r }

func (e *Resistor) Reflect() float64 {
	e.b = 0
	return 0
}

func (e *Resistor) Incident(a float64) { e.a = a }

func (e *Resistor) Reset() { e.waves = waves{} }

// Capacitor is a bilinear-transform capacitor: R = 1/(2*C*fs), b[n] = a[n-1].
type Capacitor struct {
	waves
	c          float64
	sampleRate float64
	r          float64
	state      float64
}

// NewCapacitor returns a capacitor of c farads discretised at sampleRate.
func NewCapacitor(c, sampleRate float64) *Capacitor {
	e := &Capacitor{sampleRate: sampleRate}
	e.SetCapacitance(c)

	return e
}

// SetCapacitance changes the capacitance while keeping the stored wave.
// Parent adaptors must be refreshed.
func (e *Capacitor) SetCapacitance(c float64) {
	e.c = c
	e.r = 1 / (2 * c * e.sampleRate)
}

// Capacitance returns the capacitance in farads.
func (e *Capacitor) Capacitance() float64 { return e.c }

func (e *Capacitor) PortResistance() float64 { return e.r }

func (e *Capacitor) Reflect() float64 {
	e.b = e.state
	return e.b
}

func (e *Capacitor) Incident(a float64) {
	e.a = a
	e.state = a
}

func (e *Capacitor) Reset() {
	e.waves = waves{}
	e.state = 0
}

// Inductor is a bilinear-transform inductor: R = 2*L*fs, b[n] = -a[n-1].
type Inductor struct {
	waves
	l          float64
	sampleRate float64
	r          float64
	state      float64
}

// NewInductor returns an inductor of l henries discretised at sampleRate.
func NewInductor(l, sampleRate float64) *Inductor {
	e := &Inductor{sampleRate: sampleRate}
	e.SetInductance(l)

	return e
}

// SetInductance changes the inductance while keeping the stored wave.
// Parent adaptors must be refreshed.
func (e *Inductor) SetInductance(l float64) {
	e.l = l
	e.r = 2 * l * e.sampleRate
}

func (e *Inductor) PortResistance() float64 { return e.r }

func (e *Inductor) Reflect() float64 {
	e.b = -e.state
	return e.b
}

func (e *Inductor) Incident(a float64) {
	e.a = a
	e.state = a
}

func (e *Inductor) Reset() {
	e.waves = waves{}
	e.state = 0
}

// ResistiveVoltageSource is an ideal voltage source e in series with a
// resistance r. Its reflected wave is e.
type ResistiveVoltageSource struct {
	waves
	e float64
	r float64
}

// NewResistiveVoltageSource returns a source of e volts behind r ohms.
func NewResistiveVoltageSource(e, r float64) *ResistiveVoltageSource {
	return &ResistiveVoltageSource{e: e, r: r}
}

// SetVoltage changes the open-circuit voltage.
func (e *ResistiveVoltageSource) SetVoltage(v float64) { e.e = v }

func (e *ResistiveVoltageSource) PortResistance() float64 { return e.r }

func (e *ResistiveVoltageSource) Reflect() float64 {
	e.b = e.e
	return e.b
}

func (e *ResistiveVoltageSource) Incident(a float64) { e.a = a }

func (e *ResistiveVoltageSource) Reset() { e.waves = waves{} }
