package capture

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/pulsewire/internal/pulsewire"
)

func TestReadCSV(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []pulsewire.Sample
		wantErr string
	}{
		{
			name:  "header skipped",
			input: "Time (s),Voltage (V)\n0,3.3\n1e-6,0.2\n",
			want:  []pulsewire.Sample{{Time: 0, Voltage: 3.3}, {Time: 1e-6, Voltage: 0.2}},
		},
		{
			name:  "headerless keeps first sample",
			input: "0,3.3\n2e-6,0.1\n",
			want:  []pulsewire.Sample{{Time: 0, Voltage: 3.3}, {Time: 2e-6, Voltage: 0.1}},
		},
		{
			name:  "whitespace and blank lines",
			input: "time,voltage\n\n 0 , 3.3\n\n1e-6, 0.2 \n",
			want:  []pulsewire.Sample{{Time: 0, Voltage: 3.3}, {Time: 1e-6, Voltage: 0.2}},
		},
		{
			name:  "header only",
			input: "time,voltage\n",
			want:  nil,
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:    "malformed voltage",
			input:   "time,voltage\n0,3.3\n1e-6,abc\n",
			wantErr: "line 3: failed to parse voltage",
		},
		{
			name:    "malformed time after header",
			input:   "time,voltage\nnope,3.3\n",
			wantErr: "line 2: failed to parse time",
		},
		{
			name:    "wrong field count",
			input:   "0,3.3,7\n",
			wantErr: "line 1: expected 2 fields, got 3",
		},
		{
			name:    "time goes backwards",
			input:   "0.5,3.3\n0.4,3.3\n",
			wantErr: "sample time goes backwards",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ReadCSV(strings.NewReader(tc.input))
			if tc.wantErr != "" {
				if err == nil {
					t.Fatalf("expected error containing %q, got nil", tc.wantErr)
				}
				if !strings.Contains(err.Error(), tc.wantErr) {
					t.Errorf("error = %q, want it to contain %q", err, tc.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tc.want, got); diff != "" {
				t.Errorf("ReadCSV() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestReadCSV_TimeReversedIsSentinel(t *testing.T) {
	_, err := ReadCSV(strings.NewReader("1,0\n0,0\n"))
	if !errors.Is(err, ErrTimeReversed) {
		t.Errorf("expected ErrTimeReversed, got %v", err)
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	opts := pulsewire.DefaultSynthOptions(pulsewire.RoleSlave)
	opts.SamplePeriod = 0.5e-6
	samples := pulsewire.Synthesize([][]pulsewire.Bit{pulsewire.EncodeBytes([]byte{0xaa})}, opts)

	var buf bytes.Buffer
	if err := WriteCSV(&buf, samples); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "time,voltage\n") {
		t.Errorf("missing header: %q", buf.String()[:20])
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	if diff := cmp.Diff(samples, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}

	got := pulsewire.Decode(back, pulsewire.Config{Role: pulsewire.RoleSlave})
	if len(got) != 1 || !bytes.Equal(got[0].Bytes, []byte{0xaa}) {
		t.Errorf("decoded %+v, want one burst of 0xaa", got)
	}
}
