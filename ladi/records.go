// Package ladi provides typed records and table IO for the LADI
// (Low Altitude Disaster Imagery) crowdsourced annotation dumps.
package ladi

// LabelRecord is one crowdsourced annotation row from the aggregated
// responses dump. Answer holds a bracket-and-comma-delimited tag list,
// e.g. "[Flood, Infrastructure]".
type LabelRecord struct {
	URL    string `csv:"url"`
	Answer string `csv:"Answer"`
}

// Tags returns the record's normalized tag set.
func (r LabelRecord) Tags() []string {
	return ParseTags(r.Answer)
}

// ImageMetadata is one row of the images metadata dump. Only URL and
// S3Path participate in sampling; the rest are carried through to the
// output subset.
type ImageMetadata struct {
	UUID      string  `csv:"uuid"`
	Timestamp string  `csv:"timestamp"`
	GPSLat    float64 `csv:"gps_lat"`
	GPSLon    float64 `csv:"gps_lon"`
	GPSAlt    float64 `csv:"gps_alt"`
	FileSize  int64   `csv:"file_size"`
	Width     int     `csv:"width"`
	Height    int     `csv:"height"`
	S3Path    string  `csv:"s3_path"`
	URL       string  `csv:"url"`
}

// LabeledSample is one row of an output label manifest: a storage path
// and its binary class (true for the positive, flood-containing class).
type LabeledSample struct {
	S3Path string `csv:"s3_path"`
	Label  bool   `csv:"label"`
}
