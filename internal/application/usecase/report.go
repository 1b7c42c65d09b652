package usecase

import (
	"fmt"
	"strings"

	"github.com/diillson/aws-idle-notifier/internal/domain/entity"
)

const (
	// MessagePreamble opens every notification body.
	MessagePreamble = "The following resources have been idle or underutilized for over 30 days. Please delete if no longer needed:\n\n"

	// MaxMessageBytes is the SNS limit for a message body.
	MaxMessageBytes = 256 * 1024

	truncationReserve = 64
)

// BuildReport assembles the scanner outputs into the fixed-order report.
func BuildReport(ec2Instances, ebsVolumes, rdsInstances, s3Buckets []string) entity.Report {
	report := entity.NewReport()
	report.Set(entity.KindComputeInstance, ec2Instances)
	report.Set(entity.KindBlockVolume, ebsVolumes)
	report.Set(entity.KindDatabaseInstance, rdsInstances)
	report.Set(entity.KindObjectBucket, s3Buckets)
	return report
}

// RenderMessage formats the report as the notification body. Kinds without
// idle resources are left out.
func RenderMessage(report entity.Report) string {
	return renderMessage(report, 0)
}

// renderMessage stops adding resource lines once the body would exceed limit
// bytes and appends a truncation marker instead. A limit of 0 disables the cap.
func renderMessage(report entity.Report, limit int) string {
	var b strings.Builder
	b.WriteString(MessagePreamble)

	written := 0
	for _, section := range report.Sections {
		if len(section.ResourceIDs) == 0 {
			continue
		}
		header := section.Label + ":\n"
		if limit > 0 && b.Len()+len(header)+truncationReserve > limit {
			break
		}
		b.WriteString(header)
		for _, id := range section.ResourceIDs {
			if limit > 0 && b.Len()+len(id)+1+truncationReserve > limit {
				b.WriteString(truncationMarker(report.Total() - written))
				return b.String()
			}
			b.WriteString(id)
			b.WriteString("\n")
			written++
		}
		b.WriteString("\n")
	}

	if remaining := report.Total() - written; remaining > 0 {
		b.WriteString(truncationMarker(remaining))
	}
	return b.String()
}

func truncationMarker(remaining int) string {
	return fmt.Sprintf("... (truncated, %d more resources)\n", remaining)
}
