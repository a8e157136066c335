// Package transcript turns WhisperX segments into the views the client renders: a readable
// transcript, a speaker roster and participation statistics.
package transcript

import (
	"fmt"
	"math"
	"strings"

	"mentorai/backend/models"
)

const (
	// segmentConfidence is the fixed per-segment confidence.
	segmentConfidence = 0.8
	// professorMinSegments: a speaker with more segments than this is labeled professor.
	professorMinSegments = 5
	// UnknownSpeaker labels segments without a speaker in participation stats.
	UnknownSpeaker = "unknown"
)

// FormatTimestamp renders seconds as MM:SS, or HH:MM:SS once the hour is nonzero.
func FormatTimestamp(seconds float64) string {
	hours := int(math.Floor(seconds / 3600))
	minutes := int(math.Floor(math.Mod(seconds, 3600) / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%02d:%02d", minutes, secs)
}

// FormatTranscript renders one "[speaker] [timestamp]: text" line per segment, separated
// by blank lines. The speaker block is empty for unlabeled segments.
func FormatTranscript(segments []models.Segment) string {
	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		speaker := ""
		if seg.Speaker != "" {
			speaker = "[" + seg.Speaker + "]"
		}
		lines = append(lines, fmt.Sprintf("%s [%s]: %s", speaker, FormatTimestamp(seg.Start), seg.Text))
	}
	return strings.Join(lines, "\n\n")
}

// ExtractSpeakers lists labeled speakers in order of first appearance. The role is a
// segment-count heuristic, not an acoustic one.
func ExtractSpeakers(segments []models.Segment) []models.SpeakerSummary {
	var order []string
	counts := make(map[string]int)
	for _, seg := range segments {
		if seg.Speaker == "" {
			continue
		}
		if _, ok := counts[seg.Speaker]; !ok {
			order = append(order, seg.Speaker)
		}
		counts[seg.Speaker]++
	}

	speakers := make([]models.SpeakerSummary, 0, len(order))
	for _, id := range order {
		role := models.SpeakerStudent
		if counts[id] > professorMinSegments {
			role = models.SpeakerProfessor
		}
		// Every segment contributes segmentConfidence, so the mean is the constant itself.
		speakers = append(speakers, models.SpeakerSummary{
			ID:         id,
			Type:       role,
			Confidence: segmentConfidence,
		})
	}
	return speakers
}

// AnalyzeParticipation accumulates talk time, segment and word counts per speaker and
// counts speaker-to-speaker transitions between adjacent segments.
func AnalyzeParticipation(segments []models.Segment) models.ParticipationReport {
	report := models.ParticipationReport{
		SpeakerStats:        make(map[string]models.SpeakerStats),
		InteractionPatterns: []models.Interaction{},
	}

	index := make(map[[2]string]int)
	for i, seg := range segments {
		speaker := speakerOrUnknown(seg)
		duration := seg.End - seg.Start

		stats := report.SpeakerStats[speaker]
		stats.Time += duration
		stats.Segments++
		stats.Words += len(strings.Split(seg.Text, " "))
		report.SpeakerStats[speaker] = stats

		report.TotalTime += duration

		if i == 0 {
			continue
		}
		key := [2]string{speakerOrUnknown(segments[i-1]), speaker}
		if pos, ok := index[key]; ok {
			report.InteractionPatterns[pos].Count++
			continue
		}
		index[key] = len(report.InteractionPatterns)
		report.InteractionPatterns = append(report.InteractionPatterns, models.Interaction{
			From:  key[0],
			To:    key[1],
			Count: 1,
		})
	}
	return report
}

func speakerOrUnknown(seg models.Segment) string {
	if seg.Speaker == "" {
		return UnknownSpeaker
	}
	return seg.Speaker
}
