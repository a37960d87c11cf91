package entities

// UnassignedDistributorID is the legacy wire sentinel meaning "no distributor
// assigned yet". It survives only at the wire and storage boundary; inside the
// application an unassigned distributor is DistributorRef's zero value.
const UnassignedDistributorID = "000000000000000000000000"

// DistributorRef is an optional reference to a distributor. Consumers must go
// through Assigned/ID instead of comparing against a magic id value.
type DistributorRef struct {
	id string
}

func AssignedDistributor(id string) DistributorRef {
	return DistributorRef{id: id}
}

func UnassignedDistributor() DistributorRef {
	return DistributorRef{}
}

// DistributorRefFromWire maps the sentinel and the empty string to the
// unassigned reference.
func DistributorRefFromWire(id string) DistributorRef {
	if id == "" || id == UnassignedDistributorID {
		return DistributorRef{}
	}
	return DistributorRef{id: id}
}

func (r DistributorRef) Assigned() bool {
	return r.id != ""
}

// ID returns the distributor id and whether one is assigned.
func (r DistributorRef) ID() (string, bool) {
	return r.id, r.id != ""
}

// Wire returns the storage/wire representation, using the sentinel for the
// unassigned case.
func (r DistributorRef) Wire() string {
	if r.id == "" {
		return UnassignedDistributorID
	}
	return r.id
}
