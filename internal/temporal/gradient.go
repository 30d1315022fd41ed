package temporal

import "github.com/xiaot623/gogo/venueboard/internal/domain"

// PlanGradient returns three flat bands (setup, event, teardown) with hard
// transitions, sized by their share of the total duration.
func PlanGradient(t domain.Times, p domain.Palette) domain.GradientSpec {
	if t.Duration <= 0 {
		return flat(p[0])
	}
	setupEnd, eventEnd := boundaries(t)
	return domain.GradientSpec{
		{Offset: 0, Color: p[0]},
		{Offset: setupEnd, Color: p[0]},
		{Offset: setupEnd, Color: p[1]},
		{Offset: eventEnd, Color: p[1]},
		{Offset: eventEnd, Color: p[2]},
		{Offset: 1, Color: p[2]},
	}
}

// ProgressGradient returns the bands that have elapsed at progress percent.
// The last elapsed band is stretched to the end of the ramp.
func ProgressGradient(t domain.Times, progress float64, p domain.Palette) domain.GradientSpec {
	if t.Duration <= 0 {
		return flat(p[0])
	}
	today := float64(t.Duration) * clamp(progress, 0, 100) / 100
	setupEnd, eventEnd := boundaries(t)
	switch {
	case today < float64(t.Setup):
		return flat(p[0])
	case today < float64(t.Setup+t.Event):
		return domain.GradientSpec{
			{Offset: 0, Color: p[0]},
			{Offset: setupEnd, Color: p[0]},
			{Offset: setupEnd, Color: p[1]},
			{Offset: 1, Color: p[1]},
		}
	default:
		return domain.GradientSpec{
			{Offset: 0, Color: p[0]},
			{Offset: setupEnd, Color: p[0]},
			{Offset: setupEnd, Color: p[1]},
			{Offset: eventEnd, Color: p[1]},
			{Offset: eventEnd, Color: p[2]},
			{Offset: 1, Color: p[2]},
		}
	}
}

// RecordGradients computes both gradients of r.
func RecordGradients(r domain.EventRecord, p domain.Palette) domain.Gradients {
	return domain.Gradients{
		EventID:  r.ID,
		Plan:     PlanGradient(r.Times, p),
		Progress: ProgressGradient(r.Times, r.Progress, p),
	}
}

// boundaries returns the setup and event band ends as fractions of the
// duration, clamped to [0, 1].
func boundaries(t domain.Times) (float64, float64) {
	d := float64(t.Duration)
	setupEnd := clamp(float64(t.Setup)/d, 0, 1)
	eventEnd := clamp(float64(t.Setup+t.Event)/d, 0, 1)
	return setupEnd, eventEnd
}

func flat(color string) domain.GradientSpec {
	return domain.GradientSpec{
		{Offset: 0, Color: color},
		{Offset: 1, Color: color},
	}
}
