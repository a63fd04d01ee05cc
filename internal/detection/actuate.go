package detection

// Command is an actuator instruction derived from a shape label.
type Command struct {
	// AngleDegrees is the servo target, 0-180.
	AngleDegrees int `json:"angle_degrees"`
}

// actuation is the complete label-to-command policy.
var actuation = map[Label]Command{
	Circle: {AngleDegrees: 90},
}

// Actuate returns the command for a label, if the label has one.
// Only Circle does: it rotates the servo to 90 degrees.
func Actuate(l Label) (Command, bool) {
	cmd, ok := actuation[l]
	return cmd, ok
}
