package site

// RevealedClass is added to an element once it has scrolled into view.
const RevealedClass = "revealed"

// RevealAttribute marks elements that fade in on scroll.
const RevealAttribute = "data-reveal"

// ObserverOptions are the IntersectionObserver settings used for reveal.
type ObserverOptions struct {
	Threshold  float64
	RootMargin string
}

// DefaultObserverOptions reveals an element once 15% of it is visible, ignoring
// the bottom 40px of the viewport.
var DefaultObserverOptions = ObserverOptions{
	Threshold:  0.15,
	RootMargin: "0px 0px -40px 0px",
}

// RevealTarget is an element watched for visibility.
type RevealTarget interface {
	ClassList
}

// Intersection is one observer entry.
type Intersection struct {
	Target       RevealTarget
	Intersecting bool
}

// Unobserver stops watching a target.
type Unobserver interface {
	Unobserve(target RevealTarget)
}

// Revealer adds RevealedClass to targets the first time they intersect.
type Revealer struct {
	Options ObserverOptions
}

// NewRevealer returns a Revealer using DefaultObserverOptions.
func NewRevealer() *Revealer {
	return &Revealer{Options: DefaultObserverOptions}
}

// Observe is the observer callback: intersecting targets are revealed and no longer
// watched, the rest are left alone.
func (r *Revealer) Observe(entries []Intersection, obs Unobserver) {
	for _, entry := range entries {
		if !entry.Intersecting {
			continue
		}
		entry.Target.Add(RevealedClass)
		if obs != nil {
			obs.Unobserve(entry.Target)
		}
	}
}

// RevealAll is the fallback when no visibility observer is available.
func (r *Revealer) RevealAll(targets []RevealTarget) {
	for _, t := range targets {
		t.Add(RevealedClass)
	}
}
