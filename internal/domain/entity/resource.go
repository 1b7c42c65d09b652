package entity

// ResourceKind identifies one of the resource categories covered by a scan.
type ResourceKind int

const (
	KindComputeInstance ResourceKind = iota
	KindBlockVolume
	KindDatabaseInstance
	KindObjectBucket
)

// ResourceKinds lists every kind in report order.
var ResourceKinds = []ResourceKind{
	KindComputeInstance,
	KindBlockVolume,
	KindDatabaseInstance,
	KindObjectBucket,
}

var kindLabels = map[ResourceKind]string{
	KindComputeInstance:  "EC2 Instances",
	KindBlockVolume:      "EBS Volumes",
	KindDatabaseInstance: "RDS Instances",
	KindObjectBucket:     "S3 Buckets",
}

// Label returns the human-readable category name used in reports and notifications.
func (k ResourceKind) Label() string {
	if label, ok := kindLabels[k]; ok {
		return label
	}
	return "Unknown"
}

func (k ResourceKind) String() string {
	return k.Label()
}

// Bucket is an S3 bucket together with the region its storage metrics are published in.
// LocationErr is set when the region could not be resolved; Region is empty then.
type Bucket struct {
	Name        string `json:"name"`
	Region      string `json:"region"`
	LocationErr error  `json:"-"`
}
