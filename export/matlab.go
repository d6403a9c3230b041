// Package export writes evaluated patterns as Matlab scripts and PNG plots.
package export

import (
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"
	"github.com/wiless/beamforming/antenna"
	"github.com/wiless/beamforming/pattern"
	"github.com/wiless/vlib"
)

// DbFloor is the lowest level of the dB pattern written by WriteMatlab
var DbFloor = -40.0

// WriteMatlab writes a script that rebuilds the polar pattern, the interference map and the
// element locations of every array and plots them. m and elements may be nil.
func WriteMatlab(w io.Writer, title string, samples []pattern.Sample, m *pattern.IntensityMap, elements [][]antenna.Element) error {
	if w == nil {
		return fmt.Errorf("export: nil writer for %q", title)
	}
	if _, err := fmt.Fprintf(w, "%% %s\n", title); err != nil {
		return err
	}
	var matlab vlib.Matlab
	matlab.SetDefaults()
	matlab.SetWriter(w)
	matlab.Silent = true

	if len(samples) > 0 {
		matlab.Export("Angles", pattern.Angles(samples))
		matlab.Export("Intensity", pattern.Values(samples))
		matlab.Command("figure;")
		matlab.Command("polar(Angles*pi/180,Intensity,'k-');")
		matlab.Command("view(90,-90);")
		matlab.Export("IntensityDb", pattern.ToDb(pattern.Values(samples), DbFloor))
		matlab.Command("figure;")
		matlab.Command("plot(Angles,IntensityDb);grid on;xlabel('bearing (deg)');ylabel('dB');")
	}

	if m != nil {
		matlab.Export("X", m.X)
		matlab.Export("Y", m.Y)
		matlab.Command(fmt.Sprintf("Map=zeros(%d,%d);", len(m.Y), len(m.X)))
		for j, row := range m.Values {
			matlab.Export("row", row)
			matlab.Command(fmt.Sprintf("Map(%d,:)=row;", j+1))
		}
		matlab.Command("figure;")
		matlab.Command("imagesc(X,Y,Map);axis xy;colorbar;")
	}

	for i, arr := range elements {
		name := fmt.Sprintf("Elements%d", i)
		matlab.Export(name, antenna.Locations(arr))
		if i == 0 {
			matlab.Command("figure;")
		}
		matlab.Command(fmt.Sprintf("plot(real(%s),imag(%s),'r*');hold all;", name, name))
	}
	if len(elements) > 0 {
		matlab.Command("grid on;axis equal;")
	}

	matlab.Close()
	log.Debugf("export: wrote Matlab script for %q", title)
	return nil
}
