package cereal

// Topics shared with the rest of the vehicle stack.
const (
	BASE_WAYPOINTS   = "baseWaypoints"
	FINAL_WAYPOINTS  = "finalWaypoints"
	CURRENT_POSE     = "currentPose"
	CURRENT_VELOCITY = "currentVelocity"
	TWIST_CMD        = "twistCmd"
	DBW_ENABLED      = "dbwEnabled"
	VEHICLE_CMD      = "vehicleCmd"
)
