package datastructure

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/lintang-b-s/navigatorx-matrix/pkg"
	"github.com/lintang-b-s/navigatorx-matrix/pkg/util"
)

// WriteGraph. bzip2 compressed text format:
//
//	numVertices numEdges
//	lat lon osmId            (numVertices lines)
//	tail head dist speed hwType access  (numEdges lines)
func (g *Graph) WriteGraph(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()

	bz, err := bzip2.NewWriter(f, &bzip2.WriterConfig{})
	if err != nil {
		return err
	}
	defer bz.Close()

	w := bufio.NewWriter(bz)

	fmt.Fprintf(w, "%d %d\n", len(g.vertices), g.NumberOfEdges())

	for vId := 0; vId < len(g.vertices); vId++ {
		v := g.vertices[vId]
		latF := strconv.FormatFloat(v.lat, 'f', -1, 64)
		lonF := strconv.FormatFloat(v.lon, 'f', -1, 64)

		fmt.Fprintf(w, "%s %s %d\n", latF, lonF, v.osmId)
	}

	for eId, e := range g.outEdges {
		distF := strconv.FormatFloat(e.dist, 'f', -1, 64)
		speedF := strconv.FormatFloat(e.speed, 'f', -1, 64)

		fmt.Fprintf(w, "%d %d %s %s %d %d\n",
			g.edgeTails[eId], e.head, distF, speedF, e.hwType, e.access)
	}

	return w.Flush()
}

func ReadGraph(filename string) (*Graph, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bz, err := bzip2.NewReader(f, nil)
	if err != nil {
		return nil, err
	}
	defer bz.Close()

	br := bufio.NewReaderSize(bz, 1<<20)

	line, err := readLine(br)
	if err != nil {
		return nil, err
	}
	header := strings.Fields(line)
	if len(header) != 2 {
		return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid graph header: %q", line)
	}
	numVertices, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, err
	}
	numEdges, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, err
	}

	gb := NewGraphBuilder()
	for i := 0; i < numVertices; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, err
		}
		ff := strings.Fields(line)
		if len(ff) != 3 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid vertex line %d: %q", i, line)
		}
		lat, err := strconv.ParseFloat(ff[0], 64)
		if err != nil {
			return nil, err
		}
		lon, err := strconv.ParseFloat(ff[1], 64)
		if err != nil {
			return nil, err
		}
		osmId, err := strconv.ParseInt(ff[2], 10, 64)
		if err != nil {
			return nil, err
		}
		gb.AddVertex(lat, lon, osmId)
	}

	for i := 0; i < numEdges; i++ {
		line, err = readLine(br)
		if err != nil {
			return nil, err
		}
		ff := strings.Fields(line)
		if len(ff) != 6 {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "invalid edge line %d: %q", i, line)
		}
		tail, err := strconv.ParseUint(ff[0], 10, 32)
		if err != nil {
			return nil, err
		}
		head, err := strconv.ParseUint(ff[1], 10, 32)
		if err != nil {
			return nil, err
		}
		dist, err := strconv.ParseFloat(ff[2], 64)
		if err != nil {
			return nil, err
		}
		speed, err := strconv.ParseFloat(ff[3], 64)
		if err != nil {
			return nil, err
		}
		hwType, err := strconv.ParseUint(ff[4], 10, 8)
		if err != nil {
			return nil, err
		}
		access, err := strconv.ParseUint(ff[5], 10, 8)
		if err != nil {
			return nil, err
		}
		if int(tail) >= numVertices || int(head) >= numVertices {
			return nil, util.WrapErrorf(nil, util.ErrBadParamInput, "edge %d references unknown vertex", i)
		}
		gb.AddEdge(Index(tail), Index(head), dist, speed, pkg.OsmHighwayType(hwType), AccessMask(access))
	}

	return gb.Build(), nil
}

func readLine(br *bufio.Reader) (string, error) {
	line, err := br.ReadString('\n')
	if err != nil && !(len(line) > 0) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
