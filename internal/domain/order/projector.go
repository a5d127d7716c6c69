package order

// Icon kinds used by the status projection
const (
	IconClock     = "clock"
	IconCalendar  = "calendar"
	IconPackage   = "package"
	IconTruck     = "truck"
	IconCheck     = "check"
	IconCancelled = "x"
	IconUnknown   = "help"
)

// Style classes used by the status projection
const (
	StyleWarning = "warning"
	StyleInfo    = "info"
	StyleSuccess = "success"
	StyleDanger  = "danger"
	StyleNeutral = "neutral"
)

// NoStep marks a status that sits outside the 4-step progress track
const NoStep = -1

// ProgressSteps is the fixed lifecycle sequence rendered by every
// order view: Placed, Processing, Shipped, Delivered.
var ProgressSteps = [4]string{"Placed", "Processing", "Shipped", "Delivered"}

// StatusView is the presentation-ready projection of an order status,
// consumed identically by the tracking page, the order list and the
// account overview.
type StatusView struct {
	StyleClass string `json:"style_class"`
	IconKind   string `json:"icon_kind"`
	Label      string `json:"label"`
	StepIndex  int    `json:"step_index"`
	Terminal   bool   `json:"terminal"`
}

// projection is the fixed, case-sensitive status table
var projection = map[Status]StatusView{
	StatusPending:   {StyleClass: StyleWarning, IconKind: IconClock, Label: "Pending", StepIndex: 1},
	StatusPreOrder:  {StyleClass: StyleInfo, IconKind: IconCalendar, Label: "Pre-order", StepIndex: 0},
	StatusConfirmed: {StyleClass: StyleInfo, IconKind: IconPackage, Label: "Confirmed", StepIndex: 1},
	StatusTransit:   {StyleClass: StyleInfo, IconKind: IconTruck, Label: "In transit", StepIndex: 2},
	StatusShipped:   {StyleClass: StyleInfo, IconKind: IconTruck, Label: "Shipped", StepIndex: 2},
	StatusDelivered: {StyleClass: StyleSuccess, IconKind: IconCheck, Label: "Delivered", StepIndex: 3},
	StatusCompleted: {StyleClass: StyleSuccess, IconKind: IconCheck, Label: "Completed", StepIndex: 3},
	StatusCancelled: {StyleClass: StyleDanger, IconKind: IconCancelled, Label: "Cancelled", StepIndex: NoStep, Terminal: true},
}

// Project maps a raw status string to its presentation tuple. It is total:
// unrecognized statuses (including the empty string) degrade to a neutral
// rendering that echoes the raw value instead of failing.
func Project(status Status) StatusView {
	if view, ok := projection[status]; ok {
		return view
	}
	return StatusView{
		StyleClass: StyleNeutral,
		IconKind:   IconUnknown,
		Label:      string(status),
		StepIndex:  NoStep,
	}
}

// StepReached reports whether progress step i renders as reached under this
// view. Steps 0..StepIndex are reached; a view without a step index (and in
// particular a cancelled order, which replaces the track entirely) reaches
// none.
func (v StatusView) StepReached(i int) bool {
	return v.StepIndex != NoStep && i >= 0 && i <= v.StepIndex
}
