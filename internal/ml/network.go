package ml

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/D3XTRO12/miel-ia/internal/features"
)

// layerSpec полносвязный слой: weights[in][out], bias[out]
type layerSpec struct {
	Weights    [][]float64 `json:"weights"`
	Bias       []float64   `json:"bias"`
	Activation string      `json:"activation"`
}

// scalerSpec параметры стандартизации входа (из обучения)
type scalerSpec struct {
	Mean  []float64 `json:"mean"`
	Scale []float64 `json:"scale"`
}

// networkSpec JSON структура артефакта нейронной сети
type networkSpec struct {
	Scaler *scalerSpec `json:"scaler,omitempty"`
	Layers []layerSpec `json:"layers"`
}

type denseLayer struct {
	weights    *mat.Dense // out x in
	bias       *mat.VecDense
	activation string
}

// Network нейронная сеть (keras-модель логистической регрессии).
// Единственный сигмоидный выход разворачивается в вектор [1-p, p].
type Network struct {
	name    string
	classes int
	scaler  *scalerSpec
	layers  []denseLayer
}

func newNetwork(name string, classes int, spec *networkSpec) (*Network, error) {
	if spec == nil || len(spec.Layers) == 0 {
		return nil, fmt.Errorf("артефакт сети не содержит слоев")
	}

	if spec.Scaler != nil {
		if len(spec.Scaler.Mean) != len(spec.Scaler.Scale) {
			return nil, fmt.Errorf("scaler: размеры mean (%d) и scale (%d) не совпадают", len(spec.Scaler.Mean), len(spec.Scaler.Scale))
		}
		for i, s := range spec.Scaler.Scale {
			if s == 0 {
				return nil, fmt.Errorf("scaler: нулевой масштаб для признака %d", i)
			}
		}
	}

	layers := make([]denseLayer, 0, len(spec.Layers))
	prevOut := -1
	for i, ls := range spec.Layers {
		if len(ls.Weights) == 0 {
			return nil, fmt.Errorf("слой %d: пустая матрица весов", i)
		}
		in := len(ls.Weights)
		out := len(ls.Weights[0])
		for r, rowW := range ls.Weights {
			if len(rowW) != out {
				return nil, fmt.Errorf("слой %d: рваная матрица весов в строке %d", i, r)
			}
		}
		if len(ls.Bias) != out {
			return nil, fmt.Errorf("слой %d: размер bias (%d) не равен числу нейронов (%d)", i, len(ls.Bias), out)
		}
		if prevOut != -1 && in != prevOut {
			return nil, fmt.Errorf("слой %d: вход %d не стыкуется с выходом предыдущего слоя %d", i, in, prevOut)
		}
		switch ls.Activation {
		case "relu", "sigmoid", "softmax", "linear":
		default:
			return nil, fmt.Errorf("слой %d: неизвестная активация %q", i, ls.Activation)
		}

		// храним веса как out x in, чтобы прямой проход был одним умножением
		w := mat.NewDense(out, in, nil)
		for r := 0; r < in; r++ {
			for c := 0; c < out; c++ {
				w.Set(c, r, ls.Weights[r][c])
			}
		}
		layers = append(layers, denseLayer{
			weights:    w,
			bias:       mat.NewVecDense(out, append([]float64(nil), ls.Bias...)),
			activation: ls.Activation,
		})
		prevOut = out
	}

	lastOut := prevOut
	if lastOut != classes && !(classes == 2 && lastOut == 1) {
		return nil, fmt.Errorf("выход сети (%d нейронов) не соответствует числу классов %d", lastOut, classes)
	}

	// Выходной слой обязан давать распределение вероятностей:
	// единственный сигмоидный нейрон либо softmax по классам.
	lastAct := layers[len(layers)-1].activation
	switch {
	case lastAct == "softmax":
	case lastAct == "sigmoid" && lastOut == 1:
	default:
		return nil, fmt.Errorf("выходной слой: активация %q с %d нейронами не дает распределения вероятностей", lastAct, lastOut)
	}

	return &Network{name: name, classes: classes, scaler: spec.Scaler, layers: layers}, nil
}

func (n *Network) Name() string { return n.name }

func (n *Network) Classes() int { return n.classes }

func (n *Network) PredictProba(row features.Row) ([]float64, error) {
	input := make([]float64, len(row))
	copy(input, row)

	if n.scaler != nil {
		if len(n.scaler.Mean) != len(input) {
			return nil, &InferenceError{Model: n.name, Err: fmt.Errorf("scaler рассчитан на %d признаков, получено %d", len(n.scaler.Mean), len(input))}
		}
		for i := range input {
			input[i] = (input[i] - n.scaler.Mean[i]) / n.scaler.Scale[i]
		}
	}

	v := mat.NewVecDense(len(input), input)
	for i := range n.layers {
		layer := &n.layers[i]
		rows, cols := layer.weights.Dims()
		if cols != v.Len() {
			return nil, &InferenceError{Model: n.name, Err: fmt.Errorf("слой %d ожидает %d входов, получено %d", i, cols, v.Len())}
		}

		out := mat.NewVecDense(rows, nil)
		out.MulVec(layer.weights, v)
		out.AddVec(out, layer.bias)
		applyActivation(out, layer.activation)
		v = out
	}

	raw := make([]float64, v.Len())
	for i := range raw {
		raw[i] = v.AtVec(i)
	}

	if n.classes == 2 && len(raw) == 1 {
		return []float64{1 - raw[0], raw[0]}, nil
	}
	return raw, nil
}

func applyActivation(v *mat.VecDense, activation string) {
	switch activation {
	case "relu":
		for i := 0; i < v.Len(); i++ {
			if v.AtVec(i) < 0 {
				v.SetVec(i, 0)
			}
		}
	case "sigmoid":
		for i := 0; i < v.Len(); i++ {
			v.SetVec(i, sigmoid(v.AtVec(i)))
		}
	case "softmax":
		maxVal := v.AtVec(0)
		for i := 1; i < v.Len(); i++ {
			if v.AtVec(i) > maxVal {
				maxVal = v.AtVec(i)
			}
		}
		sum := 0.0
		for i := 0; i < v.Len(); i++ {
			e := math.Exp(v.AtVec(i) - maxVal)
			v.SetVec(i, e)
			sum += e
		}
		for i := 0; i < v.Len(); i++ {
			v.SetVec(i, v.AtVec(i)/sum)
		}
	case "linear":
	}
}
